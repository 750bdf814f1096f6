package valueobjects

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// LinkID identifies a link between two nodes.
type LinkID struct {
	value string
}

// NewLinkID creates a new random LinkID.
func NewLinkID() LinkID {
	return LinkID{value: uuid.New().String()}
}

// NewLinkIDFromString creates a LinkID from an existing string.
func NewLinkIDFromString(id string) (LinkID, error) {
	if err := validateID(id, "link ID"); err != nil {
		return LinkID{}, err
	}
	return LinkID{value: id}, nil
}

func (id LinkID) String() string               { return id.value }
func (id LinkID) Equals(other LinkID) bool     { return id.value == other.value }
func (id LinkID) IsZero() bool                 { return id.value == "" }
func (id LinkID) MarshalJSON() ([]byte, error) { return marshalID(id.value) }

// UnmarshalJSON implements json.Unmarshaler.
func (id *LinkID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalID(data, "LinkID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// AttachmentID identifies a file attachment.
type AttachmentID struct {
	value string
}

// NewAttachmentID creates a new random AttachmentID.
func NewAttachmentID() AttachmentID {
	return AttachmentID{value: uuid.New().String()}
}

// NewAttachmentIDFromString creates an AttachmentID from an existing string.
func NewAttachmentIDFromString(id string) (AttachmentID, error) {
	if err := validateID(id, "attachment ID"); err != nil {
		return AttachmentID{}, err
	}
	return AttachmentID{value: id}, nil
}

func (id AttachmentID) String() string                 { return id.value }
func (id AttachmentID) Equals(other AttachmentID) bool { return id.value == other.value }
func (id AttachmentID) IsZero() bool                   { return id.value == "" }
func (id AttachmentID) MarshalJSON() ([]byte, error)   { return marshalID(id.value) }

// UnmarshalJSON implements json.Unmarshaler.
func (id *AttachmentID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalID(data, "AttachmentID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// ProjectID identifies the project a graph belongs to.
type ProjectID struct {
	value string
}

// NewProjectID creates a new random ProjectID.
func NewProjectID() ProjectID {
	return ProjectID{value: uuid.New().String()}
}

// NewProjectIDFromString creates a ProjectID from an existing string.
func NewProjectIDFromString(id string) (ProjectID, error) {
	if err := validateID(id, "project ID"); err != nil {
		return ProjectID{}, err
	}
	return ProjectID{value: id}, nil
}

func (id ProjectID) String() string               { return id.value }
func (id ProjectID) Equals(other ProjectID) bool  { return id.value == other.value }
func (id ProjectID) IsZero() bool                 { return id.value == "" }
func (id ProjectID) MarshalJSON() ([]byte, error) { return marshalID(id.value) }

// UnmarshalJSON implements json.Unmarshaler.
func (id *ProjectID) UnmarshalJSON(data []byte) error {
	v, err := unmarshalID(data, "ProjectID")
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

func validateID(id, what string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s must be a valid UUID", what)
	}
	return nil
}

func marshalID(value string) ([]byte, error) {
	return []byte(`"` + value + `"`), nil
}

func unmarshalID(data []byte, what string) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", errors.New(what + " must be a string")
	}
	return string(data[1 : len(data)-1]), nil
}
