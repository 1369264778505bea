// Copyright 2025 Atlasdesk Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/atlasdesk/docproc/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalAttachment serializes an Attachment to bytes.
func MarshalAttachment(attachment *core.Attachment) []byte {
	buf := make([]byte, core.AttachmentMUS.Size(*attachment))
	core.AttachmentMUS.Marshal(*attachment, buf)
	return buf
}

// UnmarshalAttachment deserializes an Attachment from bytes.
func UnmarshalAttachment(data []byte) (*core.Attachment, error) {
	attachment, _, err := core.AttachmentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// MarshalContentRecord serializes a ContentRecord to bytes.
func MarshalContentRecord(record *core.ContentRecord) []byte {
	buf := make([]byte, core.ContentRecordMUS.Size(*record))
	core.ContentRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalContentRecord deserializes a ContentRecord from bytes.
func UnmarshalContentRecord(data []byte) (*core.ContentRecord, error) {
	record, _, err := core.ContentRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
