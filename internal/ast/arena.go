package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena хранит значения одного вида; индексы 1-based, 0: "нет значения".
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena with capHint preallocated slots.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() int {
	return len(a.data)
}

// Clear drops all values so owned memory can be collected.
func (a *Arena[T]) Clear() {
	clear(a.data)
	a.data = a.data[:0]
}
