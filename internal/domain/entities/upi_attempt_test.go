package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-upi.backend/internal/domain/entities"
)

func TestAttemptStatusIsTerminal(t *testing.T) {
	assert.False(t, entities.AttemptStatusOffline.IsTerminal())
	assert.False(t, entities.AttemptStatusPending.IsTerminal())
	assert.True(t, entities.AttemptStatusSuccess.IsTerminal())
	assert.True(t, entities.AttemptStatusFailed.IsTerminal())
}
