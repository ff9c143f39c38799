package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.Equal(t, "99.99", m.StringFixed(2))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})

	t.Run("allows negative amounts", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(-10), USD)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same-currency amounts", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.50)
		b := NewMoneyUSDFromFloat(5.25)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "15.75", sum.StringFixed(2))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, err := NewMoney(decimal.NewFromInt(10), EUR)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})

	t.Run("MustAdd panics on mixed currencies", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), GBP)
		assert.Panics(t, func() { a.MustAdd(b) })
	})
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyUSDFromFloat(19.99)

	assert.Equal(t, "59.97", m.MultiplyByInt(3).StringFixed(2))
	assert.Equal(t, "21.99", m.Multiply(decimal.NewFromFloat(1.1)).Round(2).StringFixed(2))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m := NewMoneyUSDFromFloat(1650)
	assert.Equal(t, "165.00", m.CalculatePercentage(decimal.NewFromInt(10)).StringFixed(2))
	assert.True(t, m.CalculatePercentage(decimal.Zero).IsZero())
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(10)
	c := NewMoneyUSDFromFloat(11)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, ZeroUSD().IsZero())
	assert.False(t, a.IsZero())
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyUSDFromFloat(1234.5)
	assert.Equal(t, "1234.50 USD", m.String())
	assert.Equal(t, "1234.50", m.StringFixed(2))
}

func TestMoney_JSON(t *testing.T) {
	t.Run("round-trips through JSON", func(t *testing.T) {
		original := NewMoneyUSDFromFloat(42.42)

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("rejects a malformed amount", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"not-a-number","currency":"USD"}`), &m)
		require.Error(t, err)
	})
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans a string amount", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("123.45"))
		assert.Equal(t, "123.45", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(42))
	})
}

func TestNewMoneyUSDFromString(t *testing.T) {
	m, err := NewMoneyUSDFromString("19.99")
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.StringFixed(2))

	_, err = NewMoneyUSDFromString("abc")
	require.Error(t, err)
}
