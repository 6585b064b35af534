package model

// StructureNode describes the discovered shape of one collection: the type
// tag of every field seen across its sampled documents and the shape of
// every subcollection observed under those documents. Empty maps are
// represented as nil so that JSON output omits them entirely.
type StructureNode struct {
	Fields         map[string]string         `json:"fields,omitempty"`
	Subcollections map[string]*StructureNode `json:"subcollections,omitempty"`
}

// NewStructureNode creates an empty structure node
func NewStructureNode() *StructureNode {
	return &StructureNode{}
}

// IsEmpty reports whether the node carries no observations
func (n *StructureNode) IsEmpty() bool {
	return len(n.Fields) == 0 && len(n.Subcollections) == 0
}

// Merge folds one per-document observation (source) into the aggregate
// (n), in place, and returns n.
//
// Field conflicts resolve first-wins: a field already present in the
// aggregate keeps its type even when a later document reports a different
// one. Subcollections new to the aggregate are adopted as deep copies so
// the source tree can never alias into the aggregate; subcollections
// present on both sides merge recursively.
func (n *StructureNode) Merge(source *StructureNode) *StructureNode {
	if source == nil {
		return n
	}

	for fieldName, typeName := range source.Fields {
		if _, exists := n.Fields[fieldName]; exists {
			continue
		}
		if n.Fields == nil {
			n.Fields = make(map[string]string)
		}
		n.Fields[fieldName] = typeName
	}

	for subName, subNode := range source.Subcollections {
		if n.Subcollections == nil {
			n.Subcollections = make(map[string]*StructureNode)
		}
		if existing, ok := n.Subcollections[subName]; ok {
			existing.Merge(subNode)
		} else {
			n.Subcollections[subName] = subNode.Clone()
		}
	}

	return n
}

// Clone returns a deep copy of the node
func (n *StructureNode) Clone() *StructureNode {
	if n == nil {
		return nil
	}

	clone := NewStructureNode()
	if n.Fields != nil {
		clone.Fields = make(map[string]string, len(n.Fields))
		for fieldName, typeName := range n.Fields {
			clone.Fields[fieldName] = typeName
		}
	}
	if n.Subcollections != nil {
		clone.Subcollections = make(map[string]*StructureNode, len(n.Subcollections))
		for subName, subNode := range n.Subcollections {
			clone.Subcollections[subName] = subNode.Clone()
		}
	}

	return clone
}

// Strip drops empty field and subcollection maps so absence, not an empty
// container, signals that nothing was observed.
func (n *StructureNode) Strip() *StructureNode {
	if len(n.Fields) == 0 {
		n.Fields = nil
	}
	if len(n.Subcollections) == 0 {
		n.Subcollections = nil
	}
	return n
}
