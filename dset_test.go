package dset

import (
	"fmt"
	"reflect"
	"testing"
)

func TestFindRegistersSingleton(t *testing.T) {
	ds := New[int]()
	if got := ds.Find(1); got != 1 {
		t.Fatalf("Find(1) = %d, want 1", got)
	}
	if !ds.Contains(1) {
		t.Fatalf("expected 1 to be registered after Find")
	}
	if ds.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ds.Len())
	}
}

func TestUnionAttachesUnderSecondRoot(t *testing.T) {
	ds := New[int]()
	ds.Union(1, 2)
	if got := ds.Find(1); got != 2 {
		t.Fatalf("Find(1) after Union(1,2) = %d, want 2", got)
	}
	if got := ds.Find(2); got != 2 {
		t.Fatalf("Find(2) after Union(1,2) = %d, want 2", got)
	}
}

func TestConnected(t *testing.T) {
	ds := New[int]()
	if ds.Connected(1, 2) {
		t.Fatalf("1 and 2 connected before any union")
	}
	ds.Union(1, 2)
	if !ds.Connected(1, 2) {
		t.Fatalf("1 and 2 not connected after Union(1,2)")
	}
	// connectivity is transitive
	ds.Union(2, 3)
	if !ds.Connected(1, 3) {
		t.Fatalf("1 and 3 not connected after chained unions")
	}
}

func TestUnionAlreadyConnectedIsNoop(t *testing.T) {
	ds := New[string]()
	ds.Union("a", "b")
	before := ds.Find("a")
	ds.Union("a", "b")
	ds.Union("b", "a")
	if got := ds.Find("a"); got != before {
		t.Fatalf("root changed by redundant union: %q -> %q", before, got)
	}
}

func TestContainsDoesNotRegister(t *testing.T) {
	ds := New[int]()
	if ds.Contains(7) {
		t.Fatalf("Contains(7) true on empty set")
	}
	if ds.Len() != 0 {
		t.Fatalf("Contains registered an element: Len = %d", ds.Len())
	}
}

func TestEmpty(t *testing.T) {
	ds := New[int]()
	if !ds.Empty() {
		t.Fatalf("new set not empty")
	}
	ds.Find(1)
	if ds.Empty() {
		t.Fatalf("set empty after Find")
	}
}

func TestSets(t *testing.T) {
	ds := New[int]()
	ds.Union(1, 2)
	ds.Union(3, 4)
	ds.Find(5)
	got := ds.Sets()
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sets() = %v, want %v", got, want)
	}
}

func TestAllYieldsElementAndRoot(t *testing.T) {
	ds := New[int]()
	ds.Union(1, 2)
	ds.Find(3)
	roots := map[int]int{}
	for elem, root := range ds.All() {
		roots[elem] = root
	}
	want := map[int]int{1: 2, 2: 2, 3: 3}
	if !reflect.DeepEqual(roots, want) {
		t.Fatalf("All() = %v, want %v", roots, want)
	}
}

func TestString(t *testing.T) {
	ds := New[int]()
	ds.Union(1, 2)
	if got, want := ds.String(), "DisjointSet(2 <- [1 2])"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestPathCompression(t *testing.T) {
	ds := New[int]()
	// build a chain 1 -> 2 -> 3 -> 4
	ds.Union(1, 2)
	ds.Union(2, 3)
	ds.Union(3, 4)
	root := ds.Find(1)
	if root != 4 {
		t.Fatalf("Find(1) = %d, want 4", root)
	}
	// after compression every element points straight at the root
	for elem, r := range ds.All() {
		if r != 4 {
			t.Fatalf("element %d has root %d, want 4", elem, r)
		}
	}
}

func TestStringElements(t *testing.T) {
	ds := New[string]()
	ds.Union("apple", "banana")
	ds.Union("banana", "cherry")
	if !ds.Connected("apple", "cherry") {
		t.Fatalf("apple and cherry not connected")
	}
	if got := ds.Find("apple"); got != "cherry" {
		t.Fatalf("Find(apple) = %q, want cherry", got)
	}
}

func ExampleDisjointSet() {
	ds := New[int]()
	ds.Union(1, 2)
	ds.Union(3, 4)
	fmt.Println(ds.Connected(1, 2))
	fmt.Println(ds.Connected(1, 4))
	fmt.Println(ds)
	// Output:
	// true
	// false
	// DisjointSet(2 <- [1 2], 4 <- [3 4])
}
