package service

import (
	"sync"
	"time"

	"github.com/dukerupert/njord/internal/domain"
)

// AttemptLog is the in-memory payment attempt journal. Every charge
// attempt is recorded against its order; at most one confirmed attempt
// exists per order.
type AttemptLog struct {
	mu       sync.Mutex
	attempts map[string][]domain.PaymentAttempt
}

// NewAttemptLog creates an empty attempt journal.
func NewAttemptLog() *AttemptLog {
	return &AttemptLog{attempts: make(map[string][]domain.PaymentAttempt)}
}

// Record appends an attempt to the order's history.
func (l *AttemptLog) Record(orderID, intentID string, amountCents int32, outcome domain.PaymentAttemptOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[orderID] = append(l.attempts[orderID], domain.PaymentAttempt{
		IntentID:    intentID,
		OrderID:     orderID,
		AmountCents: amountCents,
		Outcome:     outcome,
		CreatedAt:   time.Now(),
	})
}

// ForOrder returns a copy of the order's attempt history, oldest first.
func (l *AttemptLog) ForOrder(orderID string) []domain.PaymentAttempt {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.PaymentAttempt, len(l.attempts[orderID]))
	copy(out, l.attempts[orderID])
	return out
}

// HasConfirmed reports whether the order already has a confirmed attempt.
func (l *AttemptLog) HasConfirmed(orderID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.attempts[orderID] {
		if a.Outcome == domain.AttemptOutcomeConfirmed {
			return true
		}
	}
	return false
}

// NextAttemptNumber returns the 1-based number of the next attempt for an
// order. Used to derive per-attempt idempotency keys.
func (l *AttemptLog) NextAttemptNumber(orderID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts[orderID]) + 1
}
