package gst

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
)

// Unit is a length unit used for glass dimensions on quotation lines.
type Unit string

const (
	UnitFeet Unit = "FEET"
	UnitInch Unit = "INCH"
	UnitMM   Unit = "MM"
	UnitCM   Unit = "CM"
)

// feet per unit
var toFeet = map[Unit]decimal.Decimal{
	UnitFeet: decimal.NewFromInt(1),
	UnitInch: decimal.NewFromInt(12),
	UnitMM:   decimal.RequireFromString("304.8"),
	UnitCM:   decimal.RequireFromString("30.48"),
}

// ParseUnit normalizes a unit name. Empty means FEET.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case "":
		return UnitFeet, nil
	case "FT", "FOOT":
		return UnitFeet, nil
	case "IN", "INCHES":
		return UnitInch, nil
	}
	if _, ok := toFeet[u]; !ok {
		return "", apperr.Invalid("unknown unit %q", s)
	}
	return u, nil
}

// Feet converts v in unit u to feet. Unknown units are taken as feet.
func Feet(v decimal.Decimal, u Unit) decimal.Decimal {
	f, ok := toFeet[u]
	if !ok {
		return v
	}
	return v.Div(f)
}

// Line is one priced row of a quotation.
type Line struct {
	Height      decimal.Decimal
	Width       decimal.Decimal
	HeightUnit  Unit
	WidthUnit   Unit
	Area        decimal.Decimal // optional, square feet; wins over height × width when positive
	Quantity    int
	RatePerSqft decimal.Decimal
}

// LineArea returns the area in square feet, rounded to three places.
func LineArea(l Line) (decimal.Decimal, error) {
	if l.Area.IsPositive() {
		return l.Area.Round(3), nil
	}
	if !l.Height.IsPositive() || !l.Width.IsPositive() {
		return decimal.Zero, apperr.Invalid("height and width must be positive when area is not given")
	}
	return Feet(l.Height, l.HeightUnit).Mul(Feet(l.Width, l.WidthUnit)).Round(3), nil
}

// LineSubtotal returns area × rate × quantity rounded to two places, and the area used.
func LineSubtotal(l Line) (subtotal, area decimal.Decimal, err error) {
	if l.Quantity <= 0 {
		return decimal.Zero, decimal.Zero, apperr.Invalid("quantity must be greater than 0")
	}
	if l.RatePerSqft.IsNegative() {
		return decimal.Zero, decimal.Zero, apperr.Invalid("rate per sqft must not be negative")
	}
	area, err = LineArea(l)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	subtotal = Round2(area.Mul(l.RatePerSqft).Mul(decimal.NewFromInt(int64(l.Quantity))))
	return subtotal, area, nil
}
