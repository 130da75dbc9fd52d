package list

import "fmt"

// Iterator is a cursor over the elements of a List. It does not own the
// element it points to. A zero Iterator is the past-the-end position.
//
// Iterators survive pushes. An Iterator pointing at an element that has been
// popped or cleared must not be used again; this is not checked.
//
// End carries no back link, so End().Prev() fails instead of moving to the
// last element.
type Iterator[V any] struct {
	e *Elem[V]
}

// Value returns a pointer to the current value.
func (it Iterator[V]) Value() (*V, error) {
	if it.e == nil {
		return nil, fmt.Errorf("dereference: %w", ErrNullIterator)
	}
	return &it.e.Value, nil
}

// Next moves it to the next element.
func (it *Iterator[V]) Next() error {
	if it.e == nil {
		return fmt.Errorf("increment: %w", ErrNullIterator)
	}
	it.e = it.e.next
	return nil
}

// Prev moves it to the previous element. Moving back from the first
// element yields End.
func (it *Iterator[V]) Prev() error {
	if it.e == nil {
		return fmt.Errorf("decrement: %w", ErrNullIterator)
	}
	it.e = it.e.prev
	return nil
}

// Equal reports whether both iterators point at the same element.
func (it Iterator[V]) Equal(other Iterator[V]) bool {
	return it.e == other.e
}

func (it Iterator[V]) IsEnd() bool {
	return it.e == nil
}
