// Package gst computes quotation and invoice totals under India's Goods and
// Services Tax. Intra-state supplies split the tax into CGST and SGST, and
// inter-state supplies carry it as IGST.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
)

// BillingType toggles the taxed and tax-exempt paths.
type BillingType string

const (
	BillingGST    BillingType = "GST"
	BillingNonGST BillingType = "NON_GST"
)

func (b BillingType) Valid() bool { return b == BillingGST || b == BillingNonGST }

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Input carries the header amounts of a quotation.
type Input struct {
	Subtotal      decimal.Decimal
	Installation  decimal.Decimal
	Transport     decimal.Decimal
	Discount      decimal.Decimal
	BillingType   BillingType
	Percentage    decimal.Decimal
	ShopState     string
	CustomerState string
}

// Breakdown is the result of Compute. Tax fields are nil for NON_GST billing.
type Breakdown struct {
	Taxable    decimal.Decimal  `json:"taxable_amount"`
	Percentage *decimal.Decimal `json:"gst_percentage"`
	CGST       *decimal.Decimal `json:"cgst"`
	SGST       *decimal.Decimal `json:"sgst"`
	IGST       *decimal.Decimal `json:"igst"`
	GSTAmount  decimal.Decimal  `json:"gst_amount"`
	GrandTotal decimal.Decimal  `json:"grand_total"`
	InterState bool             `json:"inter_state"`
}

// Compute returns the tax breakdown for in.
func Compute(in Input) (Breakdown, error) {
	if !in.BillingType.Valid() {
		return Breakdown{}, apperr.Invalid("billing type must be GST or NON_GST")
	}
	amounts := []struct {
		name string
		v    decimal.Decimal
	}{
		{"subtotal", in.Subtotal},
		{"installation charge", in.Installation},
		{"transportation charge", in.Transport},
		{"discount", in.Discount},
	}
	for _, a := range amounts {
		if a.v.IsNegative() {
			return Breakdown{}, apperr.Invalid("%s must not be negative", a.name)
		}
	}

	gross := in.Subtotal.Add(in.Installation).Add(in.Transport)
	if in.Discount.GreaterThan(gross) {
		return Breakdown{}, apperr.Invalid("discount cannot exceed the total before discount")
	}
	taxable := Round2(gross.Sub(in.Discount))

	if in.BillingType == BillingNonGST {
		return Breakdown{
			Taxable:    taxable,
			GSTAmount:  decimal.Zero,
			GrandTotal: taxable,
		}, nil
	}

	if !in.Percentage.IsPositive() {
		return Breakdown{}, apperr.Invalid("GST percentage is required for GST billing")
	}
	if in.Percentage.GreaterThan(hundred) {
		return Breakdown{}, apperr.Invalid("GST percentage must not exceed 100")
	}

	tax := Round2(taxable.Mul(in.Percentage).Div(hundred))
	pct := in.Percentage
	zero := decimal.Zero
	b := Breakdown{
		Taxable:    taxable,
		Percentage: &pct,
		GSTAmount:  tax,
		GrandTotal: taxable.Add(tax),
		InterState: InterState(in.ShopState, in.CustomerState),
	}
	if b.InterState {
		igst := tax
		b.IGST, b.CGST, b.SGST = &igst, &zero, &zero
		return b, nil
	}
	cgst := Round2(tax.Div(two))
	sgst := tax.Sub(cgst)
	b.CGST, b.SGST, b.IGST = &cgst, &sgst, &zero
	return b, nil
}

// InterState reports whether a supply crosses state lines. An unknown state on
// either side is treated as intra-state.
func InterState(shopState, customerState string) bool {
	a := normalizeState(shopState)
	b := normalizeState(customerState)
	if a == "" || b == "" {
		return false
	}
	return a != b
}

func normalizeState(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
