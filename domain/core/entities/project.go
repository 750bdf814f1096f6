package entities

import (
	"time"

	"osintgraph-client/domain/core/valueobjects"
)

// Project groups a graph under one name. The engine only reads projects and
// touches LastUpdated after structural writes; project CRUD itself belongs
// to the remote store.
type Project struct {
	ID          valueobjects.ProjectID `json:"id"`
	Name        string                 `json:"name"`
	Created     time.Time              `json:"creationdate"`
	LastUpdated *time.Time             `json:"last_updated,omitempty"`
}

// Updated stamps the project with the current time and returns it.
func (p *Project) Updated() *Project {
	now := time.Now().UTC()
	p.LastUpdated = &now
	return p
}

// Clone returns a copy of the project.
func (p *Project) Clone() *Project {
	clone := *p
	if p.LastUpdated != nil {
		t := *p.LastUpdated
		clone.LastUpdated = &t
	}
	return &clone
}
