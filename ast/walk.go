package ast

// Walk traverses a set tree in depth-first order. It calls fn for each node;
// if fn returns false, the children of that node are skipped.
func Walk(s Set, fn func(Set) bool) {
	if s == nil || !fn(s) {
		return
	}

	switch n := s.(type) {
	case *Union:
		for _, child := range n.Sets {
			Walk(child, fn)
		}
	case *Intersection:
		for _, child := range n.Sets {
			Walk(child, fn)
		}
	case *Complement:
		Walk(n.Set, fn)
	}
}

// Patterns returns every file pattern fragment of s in source order.
func Patterns(s Set) []*FilePattern {
	var patterns []*FilePattern
	Walk(s, func(n Set) bool {
		if fp, ok := n.(*FilePattern); ok {
			patterns = append(patterns, fp)
		}
		return true
	})
	return patterns
}
