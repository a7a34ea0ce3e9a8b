package formatting

// ChildOffset computes the indentation that child, a direct child of parent,
// receives while the line starting at tokenBlockStartOffset is laid out.
//
// The walk climbs the parent chain iteratively. At each step the current
// child contributes its own indent only if it starts a new line; the step
// then either stops at a wrapper whose column is known (the root, a wrapper
// that may reuse its first child's indentation, an absolute child) or moves
// one level up with the current wrapper as the new child.
//
// As a side effect the walk maintains the can-use-first-child-indent flag of
// the wrappers it visits.
func (t *Tree) ChildOffset(parent, child NodeID, opts IndentOptions, tokenBlockStartOffset int) (IndentData, error) {
	if _, err := t.live("child offset", parent); err != nil {
		return IndentData{}, err
	}
	ch, err := t.live("child offset", child)
	if err != nil {
		return IndentData{}, err
	}
	if ch.parent != parent {
		return IndentData{}, t.invariant("child offset", child, ErrNotChild)
	}

	var acc IndentData
	curID, childID := parent, child
	for steps := 0; ; steps++ {
		if steps > t.maxDepth {
			return acc, t.invariant("child offset", curID, ErrDepthExceeded)
		}
		cur, err := t.live("child offset", curID)
		if err != nil {
			return acc, err
		}
		ch := &t.nodes[childID]

		childOnNewLine := ch.ws.ContainsLineFeeds()
		var childIndent IndentData
		if childOnNewLine {
			first := ch.start == cur.start || ch.start != tokenBlockStartOffset
			childIndent = indentData(opts, ch.indent, first)
		}

		if childOnNewLine && ch.indent.IsAbsolute() {
			t.clearFirstChildIndent(curID)
			return acc.Add(childIndent), nil
		}

		if ch.start == cur.start {
			cur.canUseFirstChildIndent = cur.canUseFirstChildIndent &&
				ch.canUseFirstChildIndent && childIndent.IsEmpty()
		}
		acc = acc.Add(childIndent)

		switch {
		case cur.start == tokenBlockStartOffset:
			if cur.parent == NoNode {
				return acc, nil
			}
			childID, curID = curID, cur.parent

		case !cur.ws.ContainsLineFeeds():
			if cur.parent == NoNode {
				return acc.AddWhitespace(cur.ws), nil
			}
			childID, curID = curID, cur.parent

		case cur.parent == NoNode:
			return acc.AddWhitespace(cur.ws), nil

		case cur.indent.IsAbsolute():
			// The parent's own placement is irrelevant: measure the parent
			// against the grandparent.
			p := &t.nodes[cur.parent]
			if p.parent == NoNode {
				return acc.AddWhitespace(p.ws), nil
			}
			childID, curID = cur.parent, p.parent

		case cur.canUseFirstChildIndent:
			return acc.AddWhitespace(cur.ws), nil

		default:
			childID, curID = curID, cur.parent
		}
	}
}

// CalculateChildOffset computes the indentation of a virtual child that
// would be inserted at position index among id's children.
func (t *Tree) CalculateChildOffset(id NodeID, opts IndentOptions, attrs ChildAttributes, index int) (IndentData, error) {
	n, err := t.live("calculate child offset", id)
	if err != nil {
		return IndentData{}, err
	}

	indent := attrs.ChildIndent
	if indent == nil {
		indent = ContinuationWithoutFirstIndent()
	}
	data := indentData(opts, indent, index == 0)

	switch {
	case n.parent == NoNode:
		return data.AddWhitespace(n.ws), nil
	case n.canUseFirstChildIndent && n.ws.ContainsLineFeeds():
		return data.AddWhitespace(n.ws), nil
	}

	parentData, err := t.ChildOffset(n.parent, id, opts, -1)
	if err != nil {
		return IndentData{}, err
	}
	return data.Add(parentData), nil
}

// clearFirstChildIndent clears the flag on id and on every ancestor that
// starts at the same offset.
func (t *Tree) clearFirstChildIndent(id NodeID) {
	start := t.nodes[id].start
	for cur := id; cur != NoNode && t.nodes[cur].start == start; cur = t.nodes[cur].parent {
		t.nodes[cur].canUseFirstChildIndent = false
	}
}
