package valueobjects

// LinkKind distinguishes undirected from directed links.
type LinkKind string

const (
	// LinkKindOmni is an undirected relation between two nodes.
	LinkKindOmni LinkKind = "omni"

	// LinkKindDirectional is a directed relation from source to target.
	LinkKindDirectional LinkKind = "directional"
)

// IsValid reports whether k is a known link kind.
func (k LinkKind) IsValid() bool {
	return k == LinkKindOmni || k == LinkKindDirectional
}
