package service

import (
	"testing"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAttemptLog(t *testing.T) {
	log := NewAttemptLog()

	assert.Equal(t, 1, log.NextAttemptNumber("ord-1"))
	assert.False(t, log.HasConfirmed("ord-1"))
	assert.Empty(t, log.ForOrder("ord-1"))

	log.Record("ord-1", "pi_1", 1000, domain.AttemptOutcomeDeclined)
	log.Record("ord-1", "pi_2", 1000, domain.AttemptOutcomeConfirmed)
	log.Record("ord-2", "pi_3", 500, domain.AttemptOutcomeErrored)

	assert.Equal(t, 3, log.NextAttemptNumber("ord-1"))
	assert.True(t, log.HasConfirmed("ord-1"))
	assert.False(t, log.HasConfirmed("ord-2"))

	attempts := log.ForOrder("ord-1")
	assert.Len(t, attempts, 2)
	assert.Equal(t, "pi_1", attempts[0].IntentID)
	assert.Equal(t, domain.AttemptOutcomeConfirmed, attempts[1].Outcome)
}
