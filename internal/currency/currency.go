// Package currency implements exact monetary arithmetic for tax calculations.
// All aggregation happens in integer minor units (pence, cents) so that sums
// are associative and no floating-point drift can reach a submission payload.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned by Divide when the divisor is zero.
var ErrDivisionByZero = errors.New("currency: division by zero")

// Code identifies a supported currency.
type Code string

const (
	GBP Code = "GBP"
	EUR Code = "EUR"
	USD Code = "USD"
)

// RoundingMethod selects how half-way values are resolved.
type RoundingMethod string

const (
	// MethodRound rounds half away from zero.
	MethodRound RoundingMethod = "round"
	// MethodFloor rounds toward negative infinity.
	MethodFloor RoundingMethod = "floor"
	// MethodCeiling rounds toward positive infinity.
	MethodCeiling RoundingMethod = "ceiling"
	// MethodBanker rounds half to even.
	MethodBanker RoundingMethod = "banker"
)

// Config describes a currency's precision and display formatting.
type Config struct {
	Code     Code
	Decimals int32
	Symbol   string
	Prefix   bool
}

var configs = map[Code]Config{
	GBP: {Code: GBP, Decimals: 2, Symbol: "£", Prefix: true},
	EUR: {Code: EUR, Decimals: 2, Symbol: "€", Prefix: true},
	USD: {Code: USD, Decimals: 2, Symbol: "$", Prefix: true},
}

// ConfigFor returns the configuration for a currency code. Unknown codes fall
// back to GBP, which is the only currency HMRC accepts anyway.
func ConfigFor(code Code) Config {
	if cfg, ok := configs[code]; ok {
		return cfg
	}
	return configs[GBP]
}

// ParseCode normalizes a currency code string. Unknown values map to GBP.
func ParseCode(s string) Code {
	switch Code(strings.ToUpper(strings.TrimSpace(s))) {
	case EUR:
		return EUR
	case USD:
		return USD
	default:
		return GBP
	}
}

// RoundWithMethod rounds value to the given number of decimal places using
// the selected method.
func RoundWithMethod(value decimal.Decimal, places int32, method RoundingMethod) decimal.Decimal {
	switch method {
	case MethodFloor:
		return value.RoundFloor(places)
	case MethodCeiling:
		return value.RoundCeil(places)
	case MethodBanker:
		return value.RoundBank(places)
	default:
		return value.Round(places)
	}
}

// Round rounds a value to the currency's precision.
func Round(value decimal.Decimal, code Code, method RoundingMethod) decimal.Decimal {
	return RoundWithMethod(value, ConfigFor(code).Decimals, method)
}

// ToMinorUnits converts a major-unit value to integer minor units, rounding
// half away from zero when the value carries sub-minor precision.
func ToMinorUnits(value decimal.Decimal, code Code) int64 {
	return value.Shift(ConfigFor(code).Decimals).Round(0).IntPart()
}

// FromMinorUnits converts integer minor units back to a major-unit value.
func FromMinorUnits(minor int64, code Code) decimal.Decimal {
	return decimal.New(minor, -ConfigFor(code).Decimals)
}

// Add sums two values exactly in minor units.
func Add(a, b decimal.Decimal, code Code) decimal.Decimal {
	return FromMinorUnits(ToMinorUnits(a, code)+ToMinorUnits(b, code), code)
}

// Subtract computes a-b exactly in minor units.
func Subtract(a, b decimal.Decimal, code Code) decimal.Decimal {
	return FromMinorUnits(ToMinorUnits(a, code)-ToMinorUnits(b, code), code)
}

// Sum folds a slice of values exactly in minor units. The result is
// independent of input order.
func Sum(values []decimal.Decimal, code Code) decimal.Decimal {
	var total int64
	for _, v := range values {
		total += ToMinorUnits(v, code)
	}
	return FromMinorUnits(total, code)
}

// Multiply scales a value by an arbitrary factor, rounding the product back
// to minor units with the given method.
func Multiply(value, factor decimal.Decimal, code Code, method RoundingMethod) decimal.Decimal {
	minor := decimal.NewFromInt(ToMinorUnits(value, code))
	product := RoundWithMethod(minor.Mul(factor), 0, method)
	return FromMinorUnits(product.IntPart(), code)
}

// Divide divides a value by an arbitrary divisor, rounding the quotient back
// to minor units with the given method. A zero divisor is an error rather
// than a panic.
func Divide(value, divisor decimal.Decimal, code Code, method RoundingMethod) (decimal.Decimal, error) {
	if divisor.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	minor := decimal.NewFromInt(ToMinorUnits(value, code))
	quotient := RoundWithMethod(minor.Div(divisor), 0, method)
	return FromMinorUnits(quotient.IntPart(), code), nil
}

// VATFromGross extracts the VAT portion of a VAT-inclusive amount:
// gross * rate / (1 + rate), rounded to the currency's precision.
func VATFromGross(gross, rate decimal.Decimal, code Code, method RoundingMethod) decimal.Decimal {
	if gross.IsZero() || rate.IsZero() {
		return Round(decimal.Zero, code, method)
	}
	vat := gross.Mul(rate).Div(decimal.NewFromInt(1).Add(rate))
	return Round(vat, code, method)
}

// VATFromNet computes the VAT due on a VAT-exclusive amount: net * rate.
func VATFromNet(net, rate decimal.Decimal, code Code, method RoundingMethod) decimal.Decimal {
	return Round(net.Mul(rate), code, method)
}

// Convert applies an exchange rate and rounds to the target currency's
// precision. Identical source and target codes return the value unchanged.
func Convert(value decimal.Decimal, from, to Code, rate decimal.Decimal, method RoundingMethod) decimal.Decimal {
	if from == to {
		return value
	}
	return Round(value.Mul(rate), to, method)
}

// Equals reports whether two values are equal once rounded to the currency's
// precision.
func Equals(a, b decimal.Decimal, code Code) bool {
	return Round(a, code, MethodRound).Equal(Round(b, code, MethodRound))
}

// Clamp restricts a value to [min, max] and rounds it to the currency's
// precision.
func Clamp(value, min, max decimal.Decimal, code Code) decimal.Decimal {
	if value.LessThan(min) {
		value = min
	}
	if value.GreaterThan(max) {
		value = max
	}
	return Round(value, code, MethodRound)
}

// RateForCategory maps a VAT category to its rate as a decimal fraction.
// Zero-rate, exempt, outside-scope and unknown categories all map to zero.
func RateForCategory(category string) decimal.Decimal {
	switch strings.ToLower(category) {
	case "standard_rate":
		return decimal.NewFromFloat(0.2)
	case "reduced_rate":
		return decimal.NewFromFloat(0.05)
	default:
		return decimal.Zero
	}
}

// FormatForSubmission rounds a value the way HMRC expects it on the wire.
func FormatForSubmission(value decimal.Decimal, code Code) decimal.Decimal {
	return Round(value, code, MethodRound)
}

// FormatForSubmissionAt is FormatForSubmission at an explicit precision, for
// callers whose transformation options override the currency default.
func FormatForSubmissionAt(value decimal.Decimal, places int32) decimal.Decimal {
	return RoundWithMethod(value, places, MethodRound)
}

// Format renders a value as a display string with the currency symbol.
func Format(value decimal.Decimal, code Code, includeSymbol bool) string {
	cfg := ConfigFor(code)
	s := Round(value, code, MethodRound).StringFixed(cfg.Decimals)
	if !includeSymbol {
		return s
	}
	if cfg.Prefix {
		return cfg.Symbol + s
	}
	return fmt.Sprintf("%s%s", s, cfg.Symbol)
}
