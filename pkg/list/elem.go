package list

// Elem is a node of a List.
type Elem[V any] struct {
	next, prev *Elem[V]
	Value      V
}

// Next returns the next element or nil.
func (e *Elem[V]) Next() *Elem[V] {
	return e.next
}

// Prev returns the previous element or nil.
func (e *Elem[V]) Prev() *Elem[V] {
	return e.prev
}
