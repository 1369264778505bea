package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types. These are written by hand rather than
// generated; field order is part of the storage format and must not change.

// IDMUS serializes IDs as varint uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// ProcessingStatusMUS serializes ProcessingStatus as varint int.
var ProcessingStatusMUS = processingStatusMUS{}

type processingStatusMUS struct{}

func (processingStatusMUS) Marshal(s ProcessingStatus, bs []byte) int {
	return varint.Int.Marshal(int(s), bs)
}

func (processingStatusMUS) Unmarshal(bs []byte) (ProcessingStatus, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return ProcessingStatus(v), n, err
}

func (processingStatusMUS) Size(s ProcessingStatus) int {
	return varint.Int.Size(int(s))
}

func (processingStatusMUS) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

// timeMUS serializes timestamps with microsecond precision.
var timeMUS = raw.TimeUnixMicro

// AttachmentMUS serializes Attachment values.
var AttachmentMUS = attachmentMUS{}

type attachmentMUS struct{}

func (attachmentMUS) Marshal(a Attachment, bs []byte) (n int) {
	n = IDMUS.Marshal(a.Id, bs)
	n += ord.String.Marshal(a.FileURL, bs[n:])
	n += ord.String.Marshal(a.FileName, bs[n:])
	n += ord.String.Marshal(a.FileType, bs[n:])
	n += timeMUS.Marshal(a.InsertedAt, bs[n:])
	return n
}

func (attachmentMUS) Unmarshal(bs []byte) (a Attachment, n int, err error) {
	var n1 int
	a.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return a, n, err
	}
	a.FileURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.FileName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.FileType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return a, n, err
}

func (attachmentMUS) Size(a Attachment) (size int) {
	size = IDMUS.Size(a.Id)
	size += ord.String.Size(a.FileURL)
	size += ord.String.Size(a.FileName)
	size += ord.String.Size(a.FileType)
	size += timeMUS.Size(a.InsertedAt)
	return size
}

// ContentRecordMUS serializes ContentRecord values.
var ContentRecordMUS = contentRecordMUS{}

type contentRecordMUS struct{}

func (contentRecordMUS) Marshal(r ContentRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += IDMUS.Marshal(r.AttachmentId, bs[n:])
	n += ord.String.Marshal(r.ExtractedText, bs[n:])
	n += varint.Int.Marshal(len(r.ContentChunks), bs[n:])
	for _, chunk := range r.ContentChunks {
		n += ord.String.Marshal(chunk, bs[n:])
	}
	n += ProcessingStatusMUS.Marshal(r.Status, bs[n:])
	n += ord.String.Marshal(r.ErrorMessage, bs[n:])
	n += varint.Int.Marshal(r.ImageAnalysisCount, bs[n:])
	n += timeMUS.Marshal(r.InsertedAt, bs[n:])
	n += timeMUS.Marshal(r.UpdatedAt, bs[n:])
	return n
}

func (contentRecordMUS) Unmarshal(bs []byte) (r ContentRecord, n int, err error) {
	var n1 int
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	r.AttachmentId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.ExtractedText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	if count < 0 {
		return r, n, ErrInvalidContentRecord
	}
	if count > 0 {
		r.ContentChunks = make([]string, count)
		for i := 0; i < count; i++ {
			r.ContentChunks[i], n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return r, n, err
			}
		}
	}
	r.Status, n1, err = ProcessingStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.ErrorMessage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.ImageAnalysisCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return r, n, err
}

func (contentRecordMUS) Size(r ContentRecord) (size int) {
	size = IDMUS.Size(r.Id)
	size += IDMUS.Size(r.AttachmentId)
	size += ord.String.Size(r.ExtractedText)
	size += varint.Int.Size(len(r.ContentChunks))
	for _, chunk := range r.ContentChunks {
		size += ord.String.Size(chunk)
	}
	size += ProcessingStatusMUS.Size(r.Status)
	size += ord.String.Size(r.ErrorMessage)
	size += varint.Int.Size(r.ImageAnalysisCount)
	size += timeMUS.Size(r.InsertedAt)
	size += timeMUS.Size(r.UpdatedAt)
	return size
}
