package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "12.34", want: "12.34"},
		{name: "dollar sign", input: "$12.34", want: "12.34"},
		{name: "thousands separator", input: "1,234.56", want: "1234.56"},
		{name: "sub-cent precision kept", input: "0.125", want: "0.13"},
		{name: "whitespace", input: "  5.00 ", want: "5.00"},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && m.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, m.String(), tt.want)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.345", "12.35"},
		{"12.344", "12.34"},
		{"12.335", "12.34"},
		{"0.005", "0.01"},
		{"0.004", "0.00"},
		{"14.00", "14.00"},
	}

	for _, tt := range tests {
		got := MustParse(tt.input).Round()
		if got.String() != tt.want {
			t.Errorf("Round(%s) = %s, want %s", tt.input, got.String(), tt.want)
		}
	}
}

func TestRoundIdempotent(t *testing.T) {
	values := []string{"12.345", "0.005", "99.999", "0.001", "1234.5678"}
	for _, v := range values {
		once := MustParse(v).Round()
		twice := once.Round()
		if !once.Equal(twice) {
			t.Errorf("Round not idempotent for %s: %s != %s", v, once, twice)
		}
	}
}

func TestArithmeticExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, the canonical float failure case.
	sum := MustParse("0.1").Add(MustParse("0.2"))
	if !sum.Equal(MustParse("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum.Decimal())
	}

	diff := MustParse("1.00").Sub(MustParse("0.42"))
	if !diff.Equal(MustParse("0.58")) {
		t.Errorf("1.00 - 0.42 = %s, want 0.58", diff.Decimal())
	}
}

func TestMulFraction(t *testing.T) {
	third := decimal.NewFromFloat(0.33)
	got := MustParse("30.00").MulFraction(third)
	if !got.Equal(MustParse("9.90")) {
		t.Errorf("30.00 * 0.33 = %s, want 9.90", got.Decimal())
	}
}

func TestProportionOf(t *testing.T) {
	// Tax $12 split proportionally: $30 consumption out of a $45 subtotal
	// gets $8 of tax.
	tax := MustParse("12.00")
	got := tax.ProportionOf(MustParse("30.00"), MustParse("45.00"))
	if got.Round().String() != "8.00" {
		t.Errorf("12 * (30/45) = %s, want 8.00", got.Round())
	}
}

func TestZeroValue(t *testing.T) {
	var m Money
	if !m.IsZero() {
		t.Error("zero value should be zero")
	}
	if m.String() != "0.00" {
		t.Errorf("zero value String() = %s, want 0.00", m.String())
	}
	if Zero.Display() != "$0.00" {
		t.Errorf("Display() = %s, want $0.00", Zero.Display())
	}
}
