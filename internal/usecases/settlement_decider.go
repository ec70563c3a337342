package usecases

import (
	"math/rand/v2"

	"smart-upi.backend/internal/domain/entities"
)

// SettlementDecider decides the outcome of a simulated settlement. Stands in
// for the real payment network; tests inject deterministic implementations.
type SettlementDecider interface {
	// Decide returns true when the attempt settles successfully.
	Decide(attempt *entities.UPIAttempt) bool
}

// RandomDecider settles successfully with a fixed probability.
type RandomDecider struct {
	successRate float64
}

// NewRandomDecider creates a decider with the given success rate in [0,1]
func NewRandomDecider(successRate float64) *RandomDecider {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &RandomDecider{successRate: successRate}
}

// Decide draws a Bernoulli outcome
func (d *RandomDecider) Decide(_ *entities.UPIAttempt) bool {
	return rand.Float64() < d.successRate
}
