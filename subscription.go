package mqtrie

// edgeKey identifies a single trie edge by the id of its parent node and
// the segment string labeling the edge. It is the map key the Subscription
// Map uses for its unordered (parent_id, segment) -> node lookup.
type edgeKey struct {
	parent uint64
	seg    string
}

// subNode is a node in the Subscription Map's trie. It is shared by both
// the single-value and multi-value facades; they differ only in which of
// value/values they populate at the terminal node.
type subNode[V any] struct {
	id       uint64
	parent   *subNode[V]
	seg      string
	refcount int

	hasPlusChild bool
	hasHashChild bool

	hasValue bool
	value    V
	values   []V
}

// subTrie is the shared mechanics behind SubscriptionMap and
// MultiSubscriptionMap: node allocation, refcounting, hint maintenance, and
// the wildcard-aware find walk. Neither facade exposes this type directly.
type subTrie[V any] struct {
	nodes  map[edgeKey]*subNode[V]
	root   *subNode[V]
	nextID uint64
}

func newSubTrie[V any]() *subTrie[V] {
	return &subTrie[V]{
		nodes: make(map[edgeKey]*subNode[V]),
		root:  &subNode[V]{id: 0},
	}
}

// ensurePath walks the trie from the root along segments, creating any
// missing nodes, and increments the refcount of every node on the path
// (including the root and any newly created nodes) to account for one new
// entry whose path passes through them. It returns the terminal node.
func (t *subTrie[V]) ensurePath(segments []string) *subNode[V] {
	n := t.root
	n.refcount++
	for _, seg := range segments {
		key := edgeKey{n.id, seg}
		child, ok := t.nodes[key]
		if !ok {
			t.nextID++
			child = &subNode[V]{id: t.nextID, parent: n, seg: seg}
			t.nodes[key] = child
			switch seg {
			case "+":
				n.hasPlusChild = true
			case "#":
				n.hasHashChild = true
			}
		}
		child.refcount++
		n = child
	}
	return n
}

// lookupPath walks the trie from the root along segments without creating
// anything. It returns the full path (root first, terminal last) and true
// if every segment resolved to an existing node, or nil, false otherwise.
func (t *subTrie[V]) lookupPath(segments []string) ([]*subNode[V], bool) {
	path := make([]*subNode[V], 0, len(segments)+1)
	n := t.root
	path = append(path, n)
	for _, seg := range segments {
		child, ok := t.nodes[edgeKey{n.id, seg}]
		if !ok {
			return nil, false
		}
		path = append(path, child)
		n = child
	}
	return path, true
}

// decrementPath undoes the refcount contribution of one entry along an
// existing path, walking leaf to root. Any node whose refcount reaches zero
// is deleted (the root is permanent and never deleted), and the parent's
// wildcard-child hint is cleared if the deleted node was a '+' or '#'
// child.
func (t *subTrie[V]) decrementPath(path []*subNode[V]) {
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		n.refcount--
		if n.refcount == 0 && n != t.root {
			parent := n.parent
			delete(t.nodes, edgeKey{parent.id, n.seg})
			switch n.seg {
			case "+":
				parent.hasPlusChild = false
			case "#":
				parent.hasHashChild = false
			}
		}
	}
}

// find walks the frontier of candidate nodes one topic segment at a time,
// following exact and '+' edges, and delivering '#' matches immediately as
// they are encountered (a '#' child matches the remainder of the topic,
// including zero segments, so it terminates there regardless of what's
// left). Once the topic is exhausted, deliver is called once more for each
// node remaining in the frontier and for each such node's '#' child, so a
// filter like "a/#" also matches the topic "a".
func (t *subTrie[V]) find(topic string, deliver func(*subNode[V])) {
	segments := splitTopic(topic)
	frontier := []*subNode[V]{t.root}

	for _, seg := range segments {
		if len(frontier) == 0 {
			return
		}
		var next []*subNode[V]
		for _, n := range frontier {
			if child, ok := t.nodes[edgeKey{n.id, seg}]; ok {
				next = append(next, child)
			}
			if n.hasPlusChild {
				if child, ok := t.nodes[edgeKey{n.id, "+"}]; ok {
					next = append(next, child)
				}
			}
			if n.hasHashChild {
				if child, ok := t.nodes[edgeKey{n.id, "#"}]; ok {
					deliver(child)
				}
			}
		}
		frontier = next
	}

	for _, n := range frontier {
		deliver(n)
		if n.hasHashChild {
			if child, ok := t.nodes[edgeKey{n.id, "#"}]; ok {
				deliver(child)
			}
		}
	}
}

// size returns the number of live nodes, including the permanent root.
func (t *subTrie[V]) size() int {
	return len(t.nodes) + 1
}

// SubscriptionMap stores at most one value per subscription filter. It
// implements the Subscription Map described for single-value subscriber
// registries: Insert fails with ErrDuplicateSubscription if the filter is
// already occupied.
type SubscriptionMap[V any] struct {
	t *subTrie[V]
}

// NewSubscriptionMap creates an empty single-value Subscription Map.
func NewSubscriptionMap[V any]() *SubscriptionMap[V] {
	return &SubscriptionMap[V]{t: newSubTrie[V]()}
}

// Insert stores v at filter. It returns ErrMalformedFilter (wrapped in a
// *ValidationError) if filter violates wildcard placement rules, or
// ErrDuplicateSubscription if a value is already stored at filter. On
// either error the map is left unchanged.
func (m *SubscriptionMap[V]) Insert(filter string, v V) error {
	segments, err := validateFilter(filter)
	if err != nil {
		return err
	}
	if path, ok := m.t.lookupPath(segments); ok && path[len(path)-1].hasValue {
		return ErrDuplicateSubscription
	}
	n := m.t.ensurePath(segments)
	n.hasValue = true
	n.value = v
	return nil
}

// Remove detaches the value stored at filter, if any, decrementing
// refcounts along the path and pruning nodes that drop to zero. It reports
// whether a value was actually removed.
func (m *SubscriptionMap[V]) Remove(filter string) bool {
	segments := splitTopic(filter)
	path, ok := m.t.lookupPath(segments)
	if !ok {
		return false
	}
	term := path[len(path)-1]
	if !term.hasValue {
		return false
	}
	var zero V
	term.hasValue = false
	term.value = zero
	m.t.decrementPath(path)
	return true
}

// Find invokes cb once for every value whose filter matches topic. topic
// must not contain '+' or '#'. The order in which matches are delivered is
// unspecified.
func (m *SubscriptionMap[V]) Find(topic string, cb func(V)) {
	m.t.find(topic, func(n *subNode[V]) {
		if n.hasValue {
			cb(n.value)
		}
	})
}

// FindAll materializes the matches for topic into a slice, for callers that
// would rather not supply a visitor.
func (m *SubscriptionMap[V]) FindAll(topic string) []V {
	var out []V
	m.Find(topic, func(v V) { out = append(out, v) })
	return out
}

// Size returns the number of live trie nodes, including the root. A map
// with no subscriptions has Size() == 1.
func (m *SubscriptionMap[V]) Size() int {
	return m.t.size()
}

// MultiSubscriptionMap stores a sequence of values per subscription filter.
// Insert always appends; Remove erases the first element equal to the
// given value and detaches the node once its sequence is empty.
type MultiSubscriptionMap[V comparable] struct {
	t *subTrie[V]
}

// NewMultiSubscriptionMap creates an empty multi-value Subscription Map.
func NewMultiSubscriptionMap[V comparable]() *MultiSubscriptionMap[V] {
	return &MultiSubscriptionMap[V]{t: newSubTrie[V]()}
}

// Insert appends v to the sequence stored at filter. It returns
// ErrMalformedFilter (wrapped in a *ValidationError) if filter violates
// wildcard placement rules; multi-value inserts never fail on duplicates.
func (m *MultiSubscriptionMap[V]) Insert(filter string, v V) error {
	segments, err := validateFilter(filter)
	if err != nil {
		return err
	}
	n := m.t.ensurePath(segments)
	n.values = append(n.values, v)
	n.hasValue = true
	return nil
}

// Remove erases the first value equal to v stored at filter. If the
// sequence becomes empty the node is detached. It reports whether an
// element was actually removed.
func (m *MultiSubscriptionMap[V]) Remove(filter string, v V) bool {
	segments := splitTopic(filter)
	path, ok := m.t.lookupPath(segments)
	if !ok {
		return false
	}
	term := path[len(path)-1]
	idx := -1
	for i, existing := range term.values {
		if existing == v {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	term.values = append(term.values[:idx], term.values[idx+1:]...)
	if len(term.values) == 0 {
		term.hasValue = false
		term.values = nil
	}
	m.t.decrementPath(path)
	return true
}

// Find invokes cb once for every value whose filter matches topic. The same
// subscriber registered under two different filters receives two
// callbacks; de-duplication is the caller's responsibility.
func (m *MultiSubscriptionMap[V]) Find(topic string, cb func(V)) {
	m.t.find(topic, func(n *subNode[V]) {
		for _, v := range n.values {
			cb(v)
		}
	})
}

// FindAll materializes the matches for topic into a slice.
func (m *MultiSubscriptionMap[V]) FindAll(topic string) []V {
	var out []V
	m.Find(topic, func(v V) { out = append(out, v) })
	return out
}

// Count returns the number of values stored at filter, or 0 if the filter
// has no entries.
func (m *MultiSubscriptionMap[V]) Count(filter string) int {
	segments := splitTopic(filter)
	path, ok := m.t.lookupPath(segments)
	if !ok {
		return 0
	}
	return len(path[len(path)-1].values)
}

// Size returns the number of live trie nodes, including the root.
func (m *MultiSubscriptionMap[V]) Size() int {
	return m.t.size()
}
