package synhl

// fragNode is one node of the doubly linked work list the tokenizer
// splices matches into. Both sentinels carry a nil frag.
type fragNode struct {
	prev, next *fragNode
	frag       *Fragment
}

// fragList is a doubly linked list with sentinel head/tail nodes,
// giving O(1) splice/insert/remove while the tokenizer walks and
// rewrites it. length counts real (non-sentinel) nodes only.
type fragList struct {
	head, tail *fragNode
	length     int
}

// newFragList seeds the list with a single node holding the whole
// input text, including the degenerate case where text is empty.
func newFragList(text string) *fragList {
	l := &fragList{
		head: &fragNode{},
		tail: &fragNode{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head

	f := RawFragment(text)
	l.addAfter(l.head, &f)
	return l
}

// addAfter inserts a new node holding value immediately after node and
// returns it.
func (l *fragList) addAfter(node *fragNode, value *Fragment) *fragNode {
	n := &fragNode{prev: node, next: node.next, frag: value}
	node.next.prev = n
	node.next = n
	l.length++
	return n
}

// removeRange removes up to count real nodes following node (the tail
// sentinel is never removed), relinking node directly to the
// surviving successor. It returns the number of nodes actually
// removed.
func (l *fragList) removeRange(node *fragNode, count int) int {
	removed := 0
	cur := node.next
	for removed < count && cur != l.tail {
		next := cur.next
		cur.prev = nil
		cur.next = nil
		cur = next
		removed++
	}
	node.next = cur
	cur.prev = node
	l.length -= removed
	return removed
}

// toArray returns the ordered sequence of real node values, skipping
// sentinels (and any nil values, which should not occur but are
// skipped defensively).
func (l *fragList) toArray() []Fragment {
	out := make([]Fragment, 0, l.length)
	for n := l.head.next; n != l.tail; n = n.next {
		if n.frag != nil {
			out = append(out, *n.frag)
		}
	}
	return out
}
