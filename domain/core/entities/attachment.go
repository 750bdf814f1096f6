package entities

import (
	"time"

	"osintgraph-client/domain/core/valueobjects"
)

// Attachment is file metadata owned by exactly one node. Ownership is a
// single foreign key: relocating an attachment moves it, it is never shared.
// File bytes never reach the client wholesale; only metadata does.
type Attachment struct {
	ID          valueobjects.AttachmentID `json:"id"`
	NodeID      valueobjects.NodeID       `json:"node_id"`
	Filename    string                    `json:"filename"`
	ContentType string                    `json:"content_type"`
	Size        int64                     `json:"size"`
	Created     time.Time                 `json:"created"`
}

// Clone returns a copy of the attachment metadata.
func (a *Attachment) Clone() *Attachment {
	clone := *a
	return &clone
}
