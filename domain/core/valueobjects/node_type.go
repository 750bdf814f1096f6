package valueobjects

// NodeType is the fixed enumeration of entity kinds a node can represent.
type NodeType string

const (
	NodeTypeDomain       NodeType = "domain"
	NodeTypeIP           NodeType = "ip"
	NodeTypeURL          NodeType = "url"
	NodeTypeEmail        NodeType = "email"
	NodeTypePhone        NodeType = "phone"
	NodeTypePerson       NodeType = "person"
	NodeTypeOrganisation NodeType = "organisation"
	NodeTypeImage        NodeType = "image"
	NodeTypeDocument     NodeType = "document"
	NodeTypeSocialMedia  NodeType = "socialmedia"
)

// AllNodeTypes lists every valid node type, in display order.
func AllNodeTypes() []NodeType {
	return []NodeType{
		NodeTypeDomain,
		NodeTypeIP,
		NodeTypeURL,
		NodeTypeEmail,
		NodeTypePhone,
		NodeTypePerson,
		NodeTypeOrganisation,
		NodeTypeImage,
		NodeTypeDocument,
		NodeTypeSocialMedia,
	}
}

// IsValid reports whether t is one of the known node types.
func (t NodeType) IsValid() bool {
	switch t {
	case NodeTypeDomain, NodeTypeIP, NodeTypeURL, NodeTypeEmail, NodeTypePhone,
		NodeTypePerson, NodeTypeOrganisation, NodeTypeImage, NodeTypeDocument,
		NodeTypeSocialMedia:
		return true
	}
	return false
}

// MirrorsDisplay reports whether this type's value field is always kept
// identical to its display field. For these kinds the display name is the
// value; the edit form never shows a separate value input.
func (t NodeType) MirrorsDisplay() bool {
	switch t {
	case NodeTypePerson, NodeTypeOrganisation, NodeTypeImage, NodeTypeDocument:
		return true
	}
	return false
}
