// Package dset implements a disjoint-set (union-find) data structure
// over any comparable element type. Elements are registered lazily: the
// first Find or Union involving an element makes it a singleton set.
package dset

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// DisjointSet tracks a partition of elements into disjoint sets. The
// zero value is not usable; construct with New.
type DisjointSet[T comparable] struct {
	parent map[T]T
}

// New returns an empty DisjointSet.
func New[T comparable]() *DisjointSet[T] {
	return &DisjointSet[T]{parent: make(map[T]T)}
}

// Contains reports whether x has been seen by a previous Find or Union.
// It does not register x.
func (d *DisjointSet[T]) Contains(x T) bool {
	_, ok := d.parent[x]
	return ok
}

// Len returns the number of registered elements.
func (d *DisjointSet[T]) Len() int { return len(d.parent) }

// Empty reports whether no element has been registered yet.
func (d *DisjointSet[T]) Empty() bool { return len(d.parent) == 0 }

// Find returns the representative member of the set containing x, which
// may be x itself. An unseen x is registered as its own singleton set.
// Paths are compressed so repeated lookups stay cheap.
func (d *DisjointSet[T]) Find(x T) T {
	root, ok := d.parent[x]
	if !ok {
		d.parent[x] = x
		return x
	}
	for root != d.parent[root] {
		root = d.parent[root]
	}
	// second pass: point every node on the path at the root
	for x != root {
		x, d.parent[x] = d.parent[x], root
	}
	return root
}

// Union merges the sets containing x and y. The representative of x's
// set is attached under the representative of y's set, so after
// Union(x, y) with previously disjoint elements, Find(x) == Find(y) == y's root.
// Union of already-connected elements is a no-op.
func (d *DisjointSet[T]) Union(x, y T) {
	rx, ry := d.Find(x), d.Find(y)
	if rx != ry {
		d.parent[rx] = ry
	}
}

// Connected reports whether x and y belong to the same set. Both
// elements are registered as a side effect, matching Find.
func (d *DisjointSet[T]) Connected(x, y T) bool {
	return d.Find(x) == d.Find(y)
}

// All yields every registered element paired with its representative.
func (d *DisjointSet[T]) All() iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		for x := range d.parent {
			if !yield(x, d.Find(x)) {
				return
			}
		}
	}
}

// Sets returns the connected components. Members within a component,
// and the components themselves, are ordered by their formatted value
// so the result is deterministic across runs.
func (d *DisjointSet[T]) Sets() [][]T {
	groups := make(map[T][]T)
	for x := range d.parent {
		r := d.Find(x)
		groups[r] = append(groups[r], x)
	}
	out := make([][]T, 0, len(groups))
	for _, members := range groups {
		sortValues(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i][0]) < fmt.Sprint(out[j][0])
	})
	return out
}

// String renders each component as "root <- [members]".
func (d *DisjointSet[T]) String() string {
	var parts []string
	for _, members := range d.Sets() {
		root := d.Find(members[0])
		parts = append(parts, fmt.Sprintf("%v <- %v", root, members))
	}
	return fmt.Sprintf("DisjointSet(%s)", strings.Join(parts, ", "))
}

func sortValues[T comparable](vals []T) {
	sort.Slice(vals, func(i, j int) bool {
		return fmt.Sprint(vals[i]) < fmt.Sprint(vals[j])
	})
}
