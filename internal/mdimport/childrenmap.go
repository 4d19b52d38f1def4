package mdimport

// ensureChildrenEntry guarantees document.Meta.ChildrenMap[id] exists
// (initially empty). Every emitted block gets one, including leaves, so that
// every block referenced by children_map also exists in blocks, trivially,
// for keys as well as values.
func ensureChildrenEntry(doc *DocumentData, id string) {
	if _, ok := doc.Meta.ChildrenMap[id]; !ok {
		doc.Meta.ChildrenMap[id] = []string{}
	}
}

// linkChild appends childID to children_map[parentID] in document order. A
// no-op when parentID is empty (the root page has no parent to link under).
// Callers must call this exactly once per emitted block.
func linkChild(doc *DocumentData, parentID, childID string) {
	if parentID == "" {
		return
	}
	doc.Meta.ChildrenMap[parentID] = append(doc.Meta.ChildrenMap[parentID], childID)
}

// insertDelta stores (or appends to) the delta for blockID. Multiple calls
// accumulate insert ops in order: a Code block contributes a single insert,
// while a Paragraph accumulates one insert per inline leaf.
func insertDelta(doc *DocumentData, blockID string, ops ...DeltaInsert) {
	if len(ops) == 0 {
		return
	}
	doc.Meta.TextMap[blockID] = append(doc.Meta.TextMap[blockID], ops...)
}
