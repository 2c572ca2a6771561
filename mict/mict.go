// Package mict implements an ordered multi-value map (C11): keys preserve
// first-insertion order, and each key's values form a FIFO queue.
package mict

import "container/list"

// Pair is one (key, value) entry as returned by Items, Firsts, and Lasts.
type Pair[K comparable, V any] struct {
	Key K
	Val V
}

// Mict is an ordered multi-map. The zero value is not usable; use New.
type Mict[K comparable, V any] struct {
	data  map[K]*list.List
	order []K
}

// New returns an empty Mict.
func New[K comparable, V any]() *Mict[K, V] {
	return &Mict[K, V]{data: map[K]*list.List{}}
}

// FromPairs builds a Mict by Add-ing each pair in order.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *Mict[K, V] {
	m := New[K, V]()
	for _, p := range pairs {
		m.Add(p.Key, p.Val)
	}
	return m
}

func (m *Mict[K, V]) queue(key K) *list.List {
	q, ok := m.data[key]
	if !ok {
		q = list.New()
		m.data[key] = q
		m.order = append(m.order, key)
	}
	return q
}

// Add appends value to key's FIFO queue, recording key's insertion position
// the first time it's seen.
func (m *Mict[K, V]) Add(key K, value V) {
	m.queue(key).PushBack(value)
}

// Set replaces key's entire value queue with a single value.
func (m *Mict[K, V]) Set(key K, value V) {
	q, ok := m.data[key]
	if !ok {
		m.queue(key).PushBack(value)
		return
	}
	q.Init()
	q.PushBack(value)
}

// Get returns the front (oldest) value for key.
func (m *Mict[K, V]) Get(key K) (V, bool) {
	q, ok := m.data[key]
	if !ok || q.Len() == 0 {
		var zero V
		return zero, false
	}
	return q.Front().Value.(V), true
}

// GetLast returns the back (newest) value for key.
func (m *Mict[K, V]) GetLast(key K) (V, bool) {
	q, ok := m.data[key]
	if !ok || q.Len() == 0 {
		var zero V
		return zero, false
	}
	return q.Back().Value.(V), true
}

// Nabone returns the back value for key, or ok=false if key is absent.
func (m *Mict[K, V]) Nabone(key K) (V, bool) {
	return m.GetLast(key)
}

// Nab returns the back value for key, or dflt if key is absent.
func (m *Mict[K, V]) Nab(key K, dflt V) V {
	v, ok := m.GetLast(key)
	if !ok {
		return dflt
	}
	return v
}

// GetAll returns all values for key, oldest first.
func (m *Mict[K, V]) GetAll(key K) []V {
	q, ok := m.data[key]
	if !ok {
		return nil
	}
	vals := make([]V, 0, q.Len())
	for e := q.Front(); e != nil; e = e.Next() {
		vals = append(vals, e.Value.(V))
	}
	return vals
}

// Naball returns all values for key, newest first.
func (m *Mict[K, V]) Naball(key K) []V {
	q, ok := m.data[key]
	if !ok {
		return nil
	}
	vals := make([]V, 0, q.Len())
	for e := q.Back(); e != nil; e = e.Prev() {
		vals = append(vals, e.Value.(V))
	}
	return vals
}

// Keys returns every key, in first-insertion order, without duplicates.
func (m *Mict[K, V]) Keys() []K {
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Values returns every value, in key-insertion order then intra-key FIFO.
func (m *Mict[K, V]) Values() []V {
	var out []V
	for _, k := range m.order {
		out = append(out, m.GetAll(k)...)
	}
	return out
}

// Firsts returns one (key, front-value) pair per key, in key-insertion order.
func (m *Mict[K, V]) Firsts() []Pair[K, V] {
	out := make([]Pair[K, V], 0, len(m.order))
	for _, k := range m.order {
		v, ok := m.Get(k)
		if ok {
			out = append(out, Pair[K, V]{Key: k, Val: v})
		}
	}
	return out
}

// Lasts returns one (key, back-value) pair per key, in key-insertion order.
func (m *Mict[K, V]) Lasts() []Pair[K, V] {
	out := make([]Pair[K, V], 0, len(m.order))
	for _, k := range m.order {
		v, ok := m.GetLast(k)
		if ok {
			out = append(out, Pair[K, V]{Key: k, Val: v})
		}
	}
	return out
}

// Items returns every (key, value) pair, in key-insertion order then
// intra-key FIFO order — the canonical full iteration order.
func (m *Mict[K, V]) Items() []Pair[K, V] {
	var out []Pair[K, V]
	for _, k := range m.order {
		for _, v := range m.GetAll(k) {
			out = append(out, Pair[K, V]{Key: k, Val: v})
		}
	}
	return out
}

// ContainsKey reports whether key has at least one value.
func (m *Mict[K, V]) ContainsKey(key K) bool {
	q, ok := m.data[key]
	return ok && q.Len() > 0
}

// Len returns the number of distinct keys.
func (m *Mict[K, V]) Len() int { return len(m.order) }

// IsEmpty reports whether Mict has no keys.
func (m *Mict[K, V]) IsEmpty() bool { return len(m.order) == 0 }
