package tracker

// Hooks configures a Tracker. Key is required; a nil Enter, Update or Exit is
// skipped.
type Hooks[V any, K comparable, O any] struct {
	// Key extracts the identity of an item.
	Key func(item V) K
	// Enter is called for a key not present in the previous list.
	Enter func(item V, key K, idx int) O
	// Update is called for a key present in both lists. Returning ok=false
	// keeps prev as the key's output.
	Update func(prev O, item, prevItem V, key K, idx int) (out O, ok bool)
	// Exit is called for each key missing from the new list, after the new
	// list has been processed, in previous-list order.
	Exit func(prev O, prevItem V, key K, lastIdx int)
}

type slot[V, O any] struct {
	out  O
	item V
	idx  int
}

// Tracker remembers the last list it was given. It is not safe for concurrent
// use.
type Tracker[V any, K comparable, O any] struct {
	hooks Hooks[V, K, O]
	keys  []K
	index map[K]slot[V, O]
}

// New creates a tracker. It panics if hooks.Key is nil.
func New[V any, K comparable, O any](hooks Hooks[V, K, O]) *Tracker[V, K, O] {
	if hooks.Key == nil {
		panic("tracker: Hooks.Key is required")
	}
	return &Tracker[V, K, O]{hooks: hooks, index: map[K]slot[V, O]{}}
}

// NewIdentity creates a tracker whose items are their own keys and outputs.
func NewIdentity[V comparable]() *Tracker[V, V, V] {
	return New(Hooks[V, V, V]{
		Key:   func(v V) V { return v },
		Enter: func(v V, _ V, _ int) V { return v },
	})
}

// Update diffs items against the previous list and returns the outputs in
// items order. Each key is matched against the previous list at most once: a
// key repeated within items enters again, and the last occurrence is the one
// remembered. The earlier occurrence gets no Exit.
func (t *Tracker[V, K, O]) Update(items []V) []O {
	next := make(map[K]slot[V, O], len(items))
	keys := make([]K, 0, len(items))
	outs := make([]O, 0, len(items))

	for idx, item := range items {
		key := t.hooks.Key(item)
		prev, found := t.index[key]

		var out O
		switch {
		case found:
			out = prev.out
			if t.hooks.Update != nil {
				if o, ok := t.hooks.Update(prev.out, item, prev.item, key, idx); ok {
					out = o
				}
			}
		case t.hooks.Enter != nil:
			out = t.hooks.Enter(item, key, idx)
		}

		delete(t.index, key)
		if _, dup := next[key]; !dup {
			keys = append(keys, key)
		}
		next[key] = slot[V, O]{out: out, item: item, idx: idx}
		outs = append(outs, out)
	}

	if t.hooks.Exit != nil {
		for _, key := range t.keys {
			if s, gone := t.index[key]; gone {
				t.hooks.Exit(s.out, s.item, key, s.idx)
			}
		}
	}

	t.keys = keys
	t.index = next
	return outs
}

// Len returns the number of keys in the last list.
func (t *Tracker[V, K, O]) Len() int { return len(t.index) }

// Reset forgets the previous list without calling Exit.
func (t *Tracker[V, K, O]) Reset() {
	t.keys = nil
	t.index = map[K]slot[V, O]{}
}
