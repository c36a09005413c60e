package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/gst"
)

// DateLayout is the printed date format.
const DateLayout = "02-01-2006"

var two = decimal.NewFromInt(2)

func money(d decimal.Decimal) string { return "Rs. " + d.StringFixed(2) }

func moneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return money(decimal.Zero)
	}
	return money(*d)
}

func date(t time.Time) string { return t.Format(DateLayout) }

// size prints a glass size with its units, "6 x 4 FEET" when both sides share a unit.
func size(h, w decimal.Decimal, hu, wu gst.Unit) string {
	if hu == wu {
		return fmt.Sprintf("%s x %s %s", h.String(), w.String(), hu)
	}
	return fmt.Sprintf("%s %s x %s %s", h.String(), hu, w.String(), wu)
}

func glassLabel(glassType, thickness string) string {
	if thickness == "" || strings.Contains(strings.ToUpper(glassType), strings.ToUpper(thickness)) {
		return glassType
	}
	return thickness + " " + glassType
}

// percent prints a tax rate without trailing zeros: 18, 9, 6.25.
func percent(d decimal.Decimal) string { return d.String() + "%" }
