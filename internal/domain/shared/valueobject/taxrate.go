package valueobject

import (
	"database/sql/driver"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// TaxRate is a value object representing a tax percentage in [0, 100].
// It is immutable - all operations return new TaxRate instances
type TaxRate struct {
	percent decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewTaxRate creates a new TaxRate, rejecting values outside [0, 100]
func NewTaxRate(percent decimal.Decimal) (TaxRate, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return TaxRate{}, fmt.Errorf("tax rate must be between 0 and 100, got %s", percent)
	}
	return TaxRate{percent: percent}, nil
}

// NewTaxRateFromFloat creates a TaxRate from a float64 percentage
func NewTaxRateFromFloat(percent float64) (TaxRate, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return TaxRate{}, fmt.Errorf("tax rate must be a finite number")
	}
	return NewTaxRate(decimal.NewFromFloat(percent))
}

// MustNewTaxRate creates a TaxRate and panics on error
func MustNewTaxRate(percent decimal.Decimal) TaxRate {
	r, err := NewTaxRate(percent)
	if err != nil {
		panic(err)
	}
	return r
}

// ZeroTaxRate returns a zero tax rate
func ZeroTaxRate() TaxRate {
	return TaxRate{percent: decimal.Zero}
}

// NormalizeTaxRate converts an untrusted percentage into a TaxRate.
// Values that are not a valid percentage (NaN, infinite, negative, above 100)
// collapse to zero. The permissive fallback is relied upon by the dashboard UI.
func NormalizeTaxRate(percent float64) TaxRate {
	r, err := NewTaxRateFromFloat(percent)
	if err != nil {
		return ZeroTaxRate()
	}
	return r
}

// Percent returns the percentage value
func (r TaxRate) Percent() decimal.Decimal {
	return r.percent
}

// IsZero returns true if the rate is zero
func (r TaxRate) IsZero() bool {
	return r.percent.IsZero()
}

// Multiplier returns 1 + rate/100, the factor a taxed amount is scaled by
func (r TaxRate) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(r.percent.Div(hundred))
}

// Apply returns the tax portion of the given amount
func (r TaxRate) Apply(m Money) Money {
	return m.CalculatePercentage(r.percent)
}

// Equals returns true if both rates are equal
func (r TaxRate) Equals(other TaxRate) bool {
	return r.percent.Equal(other.percent)
}

// Float64 returns the percentage as a float64 (may lose precision)
func (r TaxRate) Float64() float64 {
	f, _ := r.percent.Float64()
	return f
}

// String returns the percentage followed by a percent sign
func (r TaxRate) String() string {
	return r.percent.String() + "%"
}

// MarshalJSON implements json.Marshaler
func (r TaxRate) MarshalJSON() ([]byte, error) {
	return []byte(r.percent.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *TaxRate) UnmarshalJSON(data []byte) error {
	percent, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid tax rate: %w", err)
	}
	parsed, err := NewTaxRate(percent)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements driver.Valuer for database storage
func (r TaxRate) Value() (driver.Value, error) {
	return r.percent.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (r *TaxRate) Scan(value any) error {
	if value == nil {
		r.percent = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TaxRate", value)
	}

	percent, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	r.percent = percent
	return nil
}
