package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateProfit_NonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -0.01, -50} {
		assert.Equal(t, 0.0, SimulateProfit(price, 10, 27.5, DefaultDemandBase, 1.3), "price %.2f", price)
	}
}

func TestSimulateProfit_AtParity(t *testing.T) {
	// At the competitor average demand equals the base.
	got := SimulateProfit(20, 10, 20, DefaultDemandBase, 1.3)
	assert.InDelta(t, 1000, got, 1e-9)
}

func TestSimulateProfit_HigherPriceLowersDemand(t *testing.T) {
	demandAt := func(price float64) float64 {
		return SimulateProfit(price, 0, 20, DefaultDemandBase, 1.2) / price
	}
	assert.Greater(t, demandAt(18), demandAt(20))
	assert.Greater(t, demandAt(20), demandAt(25))
}

func TestSimulateProfit_BelowCostIsLoss(t *testing.T) {
	assert.Less(t, SimulateProfit(8, 10, 20, DefaultDemandBase, 1.0), 0.0)
}
