package node

// StructuralEqual reports whether two nodes are structurally equal:
// same type, same token, same properties, and recursively equal children.
// Positions are ignored, so two occurrences of the same expression at
// different source locations compare equal.
func StructuralEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Type != b.Type || a.Token != b.Token {
		return false
	}

	if !propsEqual(a.Props, b.Props) {
		return false
	}

	if len(a.Children) != len(b.Children) {
		return false
	}

	for i := range a.Children {
		if !StructuralEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}

	return true
}

func propsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}

	for k, v := range a {
		if other, ok := b[k]; !ok || other != v {
			return false
		}
	}

	return true
}
