package guestcart

import (
	"sync"

	"github.com/dukerupert/njord/internal/domain"
)

// memoryStore is an in-memory Store. Used in tests and as the embedded
// line set behind the file store.
type memoryStore struct {
	mu    sync.Mutex
	lines []domain.GuestCartLine
}

// NewMemoryStore creates an empty in-memory guest cart store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Lines() []domain.GuestCartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

func (s *memoryStore) Add(productID string, qty int32) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = addLine(s.lines, productID, qty)
}

func (s *memoryStore) SetQuantity(productID string, qty int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = setLine(s.lines, productID, qty)
}

func (s *memoryStore) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = removeLine(s.lines, productID)
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

func (s *memoryStore) Count() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countLines(s.lines)
}

// Line-slice helpers shared by both store implementations. Order is
// preserved: new products append, existing products update in place.

func copyLines(lines []domain.GuestCartLine) []domain.GuestCartLine {
	out := make([]domain.GuestCartLine, len(lines))
	copy(out, lines)
	return out
}

func addLine(lines []domain.GuestCartLine, productID string, qty int32) []domain.GuestCartLine {
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += qty
			return lines
		}
	}
	return append(lines, domain.GuestCartLine{ProductID: productID, Quantity: qty})
}

func setLine(lines []domain.GuestCartLine, productID string, qty int32) []domain.GuestCartLine {
	if qty <= 0 {
		return removeLine(lines, productID)
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
			return lines
		}
	}
	return append(lines, domain.GuestCartLine{ProductID: productID, Quantity: qty})
}

func removeLine(lines []domain.GuestCartLine, productID string) []domain.GuestCartLine {
	for i := range lines {
		if lines[i].ProductID == productID {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}

func countLines(lines []domain.GuestCartLine) int32 {
	var total int32
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}
