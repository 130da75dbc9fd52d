package list

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrEmptyContainer is returned by First, Last, PopFront and PopBack
	// on a list with no elements.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrNullIterator is returned when an Iterator with no referent
	// is dereferenced, advanced or retreated.
	ErrNullIterator = errors.New("null iterator")
)

// List is a doubly linked list. The zero value is an empty list ready to use.
//
// Elements are owned by the list through the forward links. Back links are
// used for traversal only. List is not safe for concurrent use.
type List[V any] struct {
	front, back *Elem[V]
	length      int
}

func New[V any]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) Front() *Elem[V] {
	return l.front
}

func (l *List[V]) Back() *Elem[V] {
	return l.back
}

func (l *List[V]) Len() int {
	return l.length
}

func (l *List[V]) IsEmpty() bool {
	return l.length == 0
}

func (l *List[V]) PushFront(v V) {
	e := &Elem[V]{Value: v}
	l.length++

	if l.front == nil {
		l.front = e
		l.back = e
		return
	}

	e.next = l.front
	l.front.prev = e
	l.front = e
}

func (l *List[V]) PushBack(v V) {
	e := &Elem[V]{Value: v}
	l.length++

	if l.back == nil {
		l.front = e
		l.back = e
		return
	}

	e.prev = l.back
	l.back.next = e
	l.back = e
}

// PopFront removes the first element and returns its value.
// The list is left untouched if it is empty.
func (l *List[V]) PopFront() (v V, err error) {
	e := l.front
	if e == nil {
		return v, fmt.Errorf("pop front: %w", ErrEmptyContainer)
	}

	l.front = e.next
	if l.front != nil {
		l.front.prev = nil
	} else {
		l.back = nil
	}
	l.length--
	return release(e), nil
}

// PopBack removes the last element and returns its value.
// The list is left untouched if it is empty.
func (l *List[V]) PopBack() (v V, err error) {
	e := l.back
	if e == nil {
		return v, fmt.Errorf("pop back: %w", ErrEmptyContainer)
	}

	l.back = e.prev
	if l.back != nil {
		l.back.next = nil
	} else {
		l.front = nil
	}
	l.length--
	return release(e), nil
}

// First returns a pointer to the first value. It stays valid until
// that element is removed.
func (l *List[V]) First() (*V, error) {
	if l.front == nil {
		return nil, fmt.Errorf("first: %w", ErrEmptyContainer)
	}
	return &l.front.Value, nil
}

// Last returns a pointer to the last value. It stays valid until
// that element is removed.
func (l *List[V]) Last() (*V, error) {
	if l.back == nil {
		return nil, fmt.Errorf("last: %w", ErrEmptyContainer)
	}
	return &l.back.Value, nil
}

// Clear removes all elements one by one from the front.
func (l *List[V]) Clear() {
	e := l.front
	for e != nil {
		next := e.next
		release(e)
		e = next
	}
	l.front = nil
	l.back = nil
	l.length = 0
}

// Swap exchanges the contents of l and other in O(1). Elements are not
// moved, so iterators taken on either list keep pointing at the same values.
func (l *List[V]) Swap(other *List[V]) {
	l.front, other.front = other.front, l.front
	l.back, other.back = other.back, l.back
	l.length, other.length = other.length, l.length
}

// Reverse reverses the order of the list in place.
func (l *List[V]) Reverse() {
	for e := l.front; e != nil; e = e.prev {
		e.next, e.prev = e.prev, e.next
	}
	l.front, l.back = l.back, l.front
}

// Begin returns an iterator at the first element, or End if l is empty.
func (l *List[V]) Begin() Iterator[V] {
	return Iterator[V]{e: l.front}
}

// End returns the past-the-end iterator.
func (l *List[V]) End() Iterator[V] {
	return Iterator[V]{}
}

// All yields values from front to back.
func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := l.front; e != nil; e = e.next {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Backward yields values from back to front.
func (l *List[V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := l.back; e != nil; e = e.prev {
			if !yield(e.Value) {
				return
			}
		}
	}
}

func (l *List[V]) Values() []V {
	s := make([]V, 0, l.length)
	for e := l.front; e != nil; e = e.next {
		s = append(s, e.Value)
	}
	return s
}

// release unlinks e and drops its value so the payload can be collected.
func release[V any](e *Elem[V]) V {
	v := e.Value
	var zero V
	e.Value = zero
	e.next = nil
	e.prev = nil
	return v
}
