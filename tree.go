package cmsgpack

import "bytes"

// Size counts the children reachable from container.Child via Next.
func Size(container *Node) int {
	n := 0
	for c := container.Child; c != nil; c = c.Next {
		n++
	}
	return n
}

// Index returns the i-th child of container by Next-walk, or nil if i
// is out of range.
func Index(container *Node, i int) *Node {
	if i < 0 {
		return nil
	}
	c := container.Child
	for ; c != nil && i > 0; i-- {
		c = c.Next
	}
	return c
}

// Field returns the first child of a map whose key payload equals name
// under a case-insensitive byte comparison. Children whose key is not
// a string (or nil) are skipped rather than ending the search; this is
// the corrected reading of the reference's lookup loop, which the
// reference itself stops on the first non-string key it meets.
func Field(m *Node, name string) *Node {
	target := []byte(name)
	for c := m.Child; c != nil; c = c.Next {
		if c.Key != nil && c.Key.Kind == KindStr && equalFold(c.Key.Payload, target) {
			return c
		}
	}
	return nil
}

func equalFold(a []byte, b []byte) bool {
	return bytes.EqualFold(a, b)
}

// AddToArray appends node as the last sibling of arr's children.
func AddToArray(arr *Node, node *Node) {
	node.Key = nil
	appendChild(arr, node)
}

// AddToMap sets node's Key to a fresh string node holding name, then
// appends node as the last sibling of m's children.
func AddToMap(m *Node, name string, node *Node) {
	node.Key = StringNode(name)
	appendChild(m, node)
}

func appendChild(container *Node, node *Node) {
	node.Next = nil
	if container.Child == nil {
		node.Prev = nil
		container.Child = node
		return
	}
	tail := container.Child
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = node
	node.Prev = tail
}

// DetachIndex unlinks the i-th child of container, patches its
// neighbours, clears its own Prev/Next, and returns it. It returns nil
// if i is out of range.
func DetachIndex(container *Node, i int) *Node {
	n := Index(container, i)
	if n == nil {
		return nil
	}
	return detach(container, n)
}

// DetachField finds the map entry keyed by name and detaches it, or
// returns nil if no such entry exists.
func DetachField(m *Node, name string) *Node {
	n := Field(m, name)
	if n == nil {
		return nil
	}
	return detach(m, n)
}

func detach(container *Node, n *Node) *Node {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		container.Child = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	}
	n.Prev = nil
	n.Next = nil
	return n
}

// DeleteIndex detaches and discards the i-th child; the detached node
// (and everything it owns) becomes unreachable for the garbage
// collector to reclaim. It reports whether a child existed at i.
func DeleteIndex(container *Node, i int) bool {
	return DetachIndex(container, i) != nil
}

// DeleteField detaches and discards the map entry keyed by name. It
// reports whether such an entry existed.
func DeleteField(m *Node, name string) bool {
	return DetachField(m, name) != nil
}

// ReplaceIndex splices replacement into the sibling chain in place of
// the i-th child, discarding the old child. It reports whether a child
// existed at i.
func ReplaceIndex(container *Node, i int, replacement *Node) bool {
	old := Index(container, i)
	if old == nil {
		return false
	}
	splice(container, old, replacement)
	return true
}

// ReplaceField assigns replacement.Key to a fresh string node holding
// name, then splices it into the sibling chain in place of the map
// entry previously keyed by name. It reports whether such an entry
// existed.
func ReplaceField(m *Node, name string, replacement *Node) bool {
	old := Field(m, name)
	if old == nil {
		return false
	}
	replacement.Key = StringNode(name)
	splice(m, old, replacement)
	return true
}

func splice(container *Node, old *Node, replacement *Node) {
	replacement.Prev = old.Prev
	replacement.Next = old.Next
	if old.Prev != nil {
		old.Prev.Next = replacement
	} else {
		container.Child = replacement
	}
	if old.Next != nil {
		old.Next.Prev = replacement
	}
	old.Prev = nil
	old.Next = nil
}

// Duplicate produces a copy of n disjoint from n: scalars copy their
// number slot, payload-bearing nodes copy their owned bytes into the
// new node, keys are copied non-recursively, and when recurse is true
// children are copied recursively; Prev/Next are rebuilt as the copy
// is assembled rather than carried over from the source.
func Duplicate(n *Node, recurse bool) *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Kind:     n.Kind,
		Etype:    n.Etype,
		Int:      n.Int,
		Uint:     n.Uint,
		unsigned: n.unsigned,
		Float:    n.Float,
		boolVal:  n.boolVal,
	}
	if n.Payload != nil {
		cp.Payload = append([]byte(nil), n.Payload...)
	}
	if n.Key != nil {
		cp.Key = Duplicate(n.Key, false)
	}
	if recurse && n.Child != nil {
		var head, tail *Node
		for c := n.Child; c != nil; c = c.Next {
			cc := Duplicate(c, true)
			if head == nil {
				head = cc
			} else {
				tail.Next = cc
				cc.Prev = tail
			}
			tail = cc
		}
		cp.Child = head
	}
	return cp
}
