package mqtrie

import (
	"strings"

	"github.com/google/btree"
)

// retEdge is one entry in the Retained Map's ordered backing store: a
// (parent_id, segment) edge plus the node it leads to. The btree orders
// entries by parent id first and segment second, so every child of a given
// parent occupies one contiguous range - exactly what the '+' wildcard and
// the '#' subtree descent need.
type retEdge[V any] struct {
	parent uint64
	seg    string
	node   *retNode[V]
}

func retEdgeLess[V any](a, b retEdge[V]) bool {
	if a.parent != b.parent {
		return a.parent < b.parent
	}
	return a.seg < b.seg
}

// retNode is a node in the Retained Map's trie.
type retNode[V any] struct {
	id       uint64
	parent   *retNode[V]
	seg      string
	refcount int

	hasPayload bool
	payload    V
}

// RetainedMap stores the most recent payload per concrete topic and serves
// it to wildcard subscription filters. Its backing edge store is ordered
// (github.com/google/btree) rather than a plain map, because find's '+'
// and '#' branches need to enumerate all children of a node - a range scan
// over (parent_id, segment) keys.
type RetainedMap[V any] struct {
	edges  *btree.BTreeG[retEdge[V]]
	root   *retNode[V]
	nextID uint64
}

// NewRetainedMap creates an empty Retained Map. degree controls the
// underlying btree's branching factor; callers that don't have a reason to
// tune it should pass 0 (or any value below 1), which selects a degree of 32.
func NewRetainedMap[V any](degree int) *RetainedMap[V] {
	if degree <= 0 {
		degree = 32
	}
	return &RetainedMap[V]{
		edges: btree.NewG(degree, retEdgeLess[V]),
		root:  &retNode[V]{id: 0},
	}
}

func (m *RetainedMap[V]) childEdge(parent *retNode[V], seg string) (retEdge[V], bool) {
	return m.edges.Get(retEdge[V]{parent: parent.id, seg: seg})
}

// eachChild invokes fn for every child edge of parent via a single range
// scan bounded by parent id - the range [(id, ""), (id+1, "")) covers every
// segment string for that parent and nothing else, since parent dominates
// the ordering.
func (m *RetainedMap[V]) eachChild(parent *retNode[V], fn func(retEdge[V]) bool) {
	lo := retEdge[V]{parent: parent.id, seg: ""}
	hi := retEdge[V]{parent: parent.id + 1, seg: ""}
	m.edges.AscendRange(lo, hi, fn)
}

func (m *RetainedMap[V]) lookupPath(segments []string) ([]*retNode[V], bool) {
	path := make([]*retNode[V], 0, len(segments)+1)
	n := m.root
	path = append(path, n)
	for _, seg := range segments {
		e, ok := m.childEdge(n, seg)
		if !ok {
			return nil, false
		}
		path = append(path, e.node)
		n = e.node
	}
	return path, true
}

func (m *RetainedMap[V]) decrementPath(path []*retNode[V]) {
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		n.refcount--
		if n.refcount == 0 && n != m.root {
			m.edges.Delete(retEdge[V]{parent: n.parent.id, seg: n.seg})
		}
	}
}

// InsertOrUpdate stores payload at concrete_topic, replacing any prior
// payload at that exact topic. It returns ErrWildcardInRetainedTopic
// (wrapped in a *ValidationError) if concrete_topic contains a '+' or '#'
// character, as a whole segment or inside a longer one, leaving the map
// unchanged.
//
// Per Design Note 1, refcounts only change when a topic transitions from
// having no retained payload to having one (or vice versa via Remove); an
// update that merely replaces an existing payload does not touch any
// node's refcount.
func (m *RetainedMap[V]) InsertOrUpdate(topic string, payload V) error {
	segments, err := validateConcreteTopic(topic)
	if err != nil {
		return err
	}

	path := make([]*retNode[V], 0, len(segments)+1)
	n := m.root
	path = append(path, n)
	for _, seg := range segments {
		e, ok := m.childEdge(n, seg)
		if ok {
			n = e.node
		} else {
			m.nextID++
			child := &retNode[V]{id: m.nextID, parent: n, seg: seg}
			m.edges.ReplaceOrInsert(retEdge[V]{parent: n.id, seg: seg, node: child})
			n = child
		}
		path = append(path, n)
	}

	isNewEntry := !n.hasPayload
	n.hasPayload = true
	n.payload = payload

	if isNewEntry {
		for _, node := range path {
			node.refcount++
		}
	}
	return nil
}

// Remove drops the payload stored at concrete_topic, decrementing
// refcounts along the path and pruning nodes that drop to zero. It reports
// whether a payload was actually removed.
func (m *RetainedMap[V]) Remove(topic string) bool {
	segments := splitTopic(topic)
	path, ok := m.lookupPath(segments)
	if !ok {
		return false
	}
	term := path[len(path)-1]
	if !term.hasPayload {
		return false
	}
	var zero V
	term.hasPayload = false
	term.payload = zero
	m.decrementPath(path)
	return true
}

// Find invokes cb once for every retained payload whose topic matches
// filter. filter may contain '+' and a trailing '#'. Empty segments match
// literally: "a//b" matches only the retained topic "a//b", never "a/b".
func (m *RetainedMap[V]) Find(filter string, cb func(V)) {
	segments := splitTopic(filter)
	frontier := []*retNode[V]{m.root}

	for _, seg := range segments {
		if len(frontier) == 0 {
			return
		}
		switch seg {
		case "+":
			var next []*retNode[V]
			for _, n := range frontier {
				m.eachChild(n, func(e retEdge[V]) bool {
					next = append(next, e.node)
					return true
				})
			}
			frontier = next

		case "#":
			for _, n := range frontier {
				m.walkSubtree(n, cb)
			}
			return

		default:
			var next []*retNode[V]
			for _, n := range frontier {
				if e, ok := m.childEdge(n, seg); ok {
					next = append(next, e.node)
				}
			}
			frontier = next
		}
	}

	for _, n := range frontier {
		if n.hasPayload {
			cb(n.payload)
		}
	}
}

// FindAll materializes the matches for filter into a slice.
func (m *RetainedMap[V]) FindAll(filter string) []V {
	var out []V
	m.Find(filter, func(v V) { out = append(out, v) })
	return out
}

func (m *RetainedMap[V]) walkSubtree(n *retNode[V], cb func(V)) {
	if n.hasPayload {
		cb(n.payload)
	}
	m.eachChild(n, func(e retEdge[V]) bool {
		m.walkSubtree(e.node, cb)
		return true
	})
}

// Walk enumerates every retained topic in the map, depth-first, invoking cb
// with the reconstructed concrete topic string and its payload. Ordering
// between siblings follows the btree's segment ordering; it is not
// otherwise meaningful.
func (m *RetainedMap[V]) Walk(cb func(topic string, payload V)) {
	m.walk(m.root, nil, cb)
}

func (m *RetainedMap[V]) walk(n *retNode[V], segs []string, cb func(string, V)) {
	if n.hasPayload {
		cb(strings.Join(segs, "/"), n.payload)
	}
	m.eachChild(n, func(e retEdge[V]) bool {
		child := make([]string, len(segs)+1)
		copy(child, segs)
		child[len(segs)] = e.seg
		m.walk(e.node, child, cb)
		return true
	})
}

// Size returns the number of live trie nodes, including the root.
func (m *RetainedMap[V]) Size() int {
	return m.edges.Len() + 1
}
