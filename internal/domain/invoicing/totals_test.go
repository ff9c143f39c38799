package invoicing

import (
	"testing"

	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLineItem(t *testing.T, price float64, ratePercent float64) LineItem {
	t.Helper()
	item, err := NewLineItem(uuid.New(), createTestCatalogItem("item", price), taxRate(t, ratePercent))
	require.NoError(t, err)
	return *item
}

func TestComputeTotals(t *testing.T) {
	t.Run("empty selection yields zeros regardless of rate", func(t *testing.T) {
		for _, rate := range []float64{0, 10, 50, 100} {
			totals := ComputeTotals(nil, taxRate(t, rate))
			assert.True(t, totals.Subtotal.IsZero())
			assert.True(t, totals.Tax.IsZero())
			assert.True(t, totals.Total.IsZero())
		}
	})

	t.Run("applies the default rate on top of tax-inclusive line amounts", func(t *testing.T) {
		// Line amounts 1100.00 and 550.00; default rate 10 applies again
		// at the aggregate level, matching the dashboard's behavior.
		items := []LineItem{
			createTestLineItem(t, 1000, 10), // 1100.00
			createTestLineItem(t, 500, 10),  // 550.00
		}

		totals := ComputeTotals(items, taxRate(t, 10))
		assert.Equal(t, "1650.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "165.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "1815.00", totals.Total.StringFixed(2))
	})

	t.Run("total is always subtotal plus tax", func(t *testing.T) {
		items := []LineItem{
			createTestLineItem(t, 19.99, 7),
			createTestLineItem(t, 3.50, 0),
			createTestLineItem(t, 1200, 21),
		}

		totals := ComputeTotals(items, taxRate(t, 8.5))
		assert.True(t, totals.Total.Equals(totals.Subtotal.MustAdd(totals.Tax)))
	})

	t.Run("zero default rate yields zero aggregate tax", func(t *testing.T) {
		items := []LineItem{createTestLineItem(t, 100, 25)}

		totals := ComputeTotals(items, valueobject.ZeroTaxRate())
		assert.Equal(t, "125.00", totals.Subtotal.StringFixed(2))
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Total.Equals(totals.Subtotal))
	})
}

func TestZeroTotals(t *testing.T) {
	totals := ZeroTotals()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}
