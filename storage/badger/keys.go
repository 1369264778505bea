package badger

import (
	"fmt"

	"github.com/atlasdesk/docproc/core"
)

// Key prefixes for different data types
const (
	attachmentPrefix    = "attrec"
	contentRecordPrefix = "conrec"
	contentLatestPrefix = "conlat"
	contentRecordIDSeq  = "conrecseq"
)

// makeAttachmentKey generates a key for an attachment by ID.
func makeAttachmentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", attachmentPrefix, id))
}

// makeContentRecordKey generates a key for a content record by ID.
func makeContentRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", contentRecordPrefix, id))
}

// makeContentLatestKey generates the per-attachment latest-record index key.
// The index holds the ID of the newest content record for the attachment and
// is overwritten on every create, so the latest row is always one read away.
func makeContentLatestKey(attachmentID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", contentLatestPrefix, attachmentID))
}
