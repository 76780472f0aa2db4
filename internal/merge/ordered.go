// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package merge

// ordered is a map that remembers insertion order, so flattening it never
// depends on Go's randomized map iteration.
type ordered[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
	live   []bool
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{index: make(map[K]int)}
}

// put inserts or overwrites a value. An overwrite keeps the key's position.
func (o *ordered[K, V]) put(k K, v V) {
	if i, ok := o.index[k]; ok {
		o.values[i] = v
		return
	}
	o.index[k] = len(o.keys)
	o.keys = append(o.keys, k)
	o.values = append(o.values, v)
	o.live = append(o.live, true)
}

// remove deletes a key. A later put appends it at the end again.
func (o *ordered[K, V]) remove(k K) {
	i, ok := o.index[k]
	if !ok {
		return
	}
	o.live[i] = false
	delete(o.index, k)
}

func (o *ordered[K, V]) slice() []V {
	out := make([]V, 0, len(o.index))
	for i, v := range o.values {
		if o.live[i] {
			out = append(out, v)
		}
	}
	return out
}
