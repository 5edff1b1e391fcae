package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseCode(t *testing.T) {
	assert.Equal(t, GBP, ParseCode("GBP"))
	assert.Equal(t, GBP, ParseCode("gbp"))
	assert.Equal(t, EUR, ParseCode(" eur "))
	assert.Equal(t, USD, ParseCode("USD"))
	assert.Equal(t, GBP, ParseCode("CHF"))
	assert.Equal(t, GBP, ParseCode(""))
}

func TestRoundWithMethod(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		method RoundingMethod
		want   string
	}{
		{"round half up", "1.005", MethodRound, "1.01"},
		{"round half away from zero negative", "-1.005", MethodRound, "-1.01"},
		{"floor", "1.019", MethodFloor, "1.01"},
		{"floor negative", "-1.011", MethodFloor, "-1.02"},
		{"ceiling", "1.011", MethodCeiling, "1.02"},
		{"ceiling negative", "-1.019", MethodCeiling, "-1.01"},
		{"banker half to even down", "1.025", MethodBanker, "1.02"},
		{"banker half to even up", "1.035", MethodBanker, "1.04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundWithMethod(dec(tt.value), 2, tt.method)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	values := []string{"0", "0.01", "-0.01", "123.45", "-123.45", "99999999.99"}
	for _, v := range values {
		minor := ToMinorUnits(dec(v), GBP)
		back := FromMinorUnits(minor, GBP)
		assert.True(t, back.Equal(dec(v)), "round trip of %s gave %s", v, back)
	}

	// Sub-minor precision rounds half away from zero.
	assert.Equal(t, int64(101), ToMinorUnits(dec("1.005"), GBP))
	assert.Equal(t, int64(-101), ToMinorUnits(dec("-1.005"), GBP))
}

func TestAddSubtract(t *testing.T) {
	assert.True(t, Add(dec("0.1"), dec("0.2"), GBP).Equal(dec("0.3")))
	assert.True(t, Subtract(dec("0.3"), dec("0.1"), GBP).Equal(dec("0.2")))
	assert.True(t, Subtract(dec("1.00"), dec("2.50"), GBP).Equal(dec("-1.50")))
}

func TestSumOrderIndependence(t *testing.T) {
	a := []decimal.Decimal{dec("0.1"), dec("0.2"), dec("0.3"), dec("1234.56"), dec("-0.05")}
	b := []decimal.Decimal{dec("-0.05"), dec("1234.56"), dec("0.3"), dec("0.1"), dec("0.2")}

	sumA := Sum(a, GBP)
	sumB := Sum(b, GBP)
	assert.True(t, sumA.Equal(sumB), "sum must not depend on order: %s vs %s", sumA, sumB)
	assert.True(t, sumA.Equal(dec("1235.11")))

	assert.True(t, Sum(nil, GBP).IsZero())
}

func TestMultiply(t *testing.T) {
	got := Multiply(dec("100.00"), dec("0.2"), GBP, MethodRound)
	assert.True(t, got.Equal(dec("20.00")))

	got = Multiply(dec("33.33"), dec("3"), GBP, MethodRound)
	assert.True(t, got.Equal(dec("99.99")))
}

func TestDivide(t *testing.T) {
	got, err := Divide(dec("100.00"), dec("3"), GBP, MethodRound)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("33.33")))

	_, err = Divide(dec("100.00"), decimal.Zero, GBP, MethodRound)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestVATFromGross(t *testing.T) {
	// £120 gross at 20% carries £20 VAT.
	got := VATFromGross(dec("120.00"), dec("0.2"), GBP, MethodRound)
	assert.True(t, got.Equal(dec("20.00")))

	// Zero gross or zero rate yields zero VAT.
	assert.True(t, VATFromGross(decimal.Zero, dec("0.2"), GBP, MethodRound).IsZero())
	assert.True(t, VATFromGross(dec("120.00"), decimal.Zero, GBP, MethodRound).IsZero())
}

func TestVATFromNet(t *testing.T) {
	got := VATFromNet(dec("100.00"), dec("0.2"), GBP, MethodRound)
	assert.True(t, got.Equal(dec("20.00")))

	// Net plus its VAT reproduces the gross the VAT was extracted from.
	gross := dec("120.00")
	vat := VATFromGross(gross, dec("0.2"), GBP, MethodRound)
	net := Subtract(gross, vat, GBP)
	assert.True(t, Add(net, VATFromNet(net, dec("0.2"), GBP, MethodRound), GBP).Equal(gross))
}

func TestConvert(t *testing.T) {
	got := Convert(dec("100.00"), EUR, GBP, dec("0.85"), MethodRound)
	assert.True(t, got.Equal(dec("85.00")))

	// Same currency ignores the rate.
	same := Convert(dec("100.00"), GBP, GBP, dec("0.85"), MethodRound)
	assert.True(t, same.Equal(dec("100.00")))
}

func TestEquals(t *testing.T) {
	assert.True(t, Equals(dec("10.001"), dec("10.002"), GBP))
	assert.False(t, Equals(dec("10.00"), dec("10.01"), GBP))
}

func TestClamp(t *testing.T) {
	assert.True(t, Clamp(dec("-5"), decimal.Zero, dec("100"), GBP).IsZero())
	assert.True(t, Clamp(dec("150"), decimal.Zero, dec("100"), GBP).Equal(dec("100")))
	assert.True(t, Clamp(dec("50"), decimal.Zero, dec("100"), GBP).Equal(dec("50")))
}

func TestRateForCategory(t *testing.T) {
	assert.True(t, RateForCategory("standard_rate").Equal(dec("0.2")))
	assert.True(t, RateForCategory("reduced_rate").Equal(dec("0.05")))
	assert.True(t, RateForCategory("zero_rate").IsZero())
	assert.True(t, RateForCategory("exempt").IsZero())
	assert.True(t, RateForCategory("whatever").IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "£1234.50", Format(dec("1234.5"), GBP, true))
	assert.Equal(t, "1234.50", Format(dec("1234.5"), GBP, false))
	assert.Equal(t, "€10.00", Format(dec("10"), EUR, true))
}
