package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/gst"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/quotation"
)

type Type string

const (
	TypeAdvance Type = "ADVANCE"
	TypeFinal   Type = "FINAL"
)

type PaymentStatus string

const (
	PaymentDue     PaymentStatus = "DUE"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

type PaymentMode string

const (
	ModeCash  PaymentMode = "CASH"
	ModeUPI   PaymentMode = "UPI"
	ModeBank  PaymentMode = "BANK"
	ModeSplit PaymentMode = "SPLIT"
)

// StatusFor derives the payment status from the paid and due amounts.
func StatusFor(paid, due decimal.Decimal) PaymentStatus {
	switch {
	case !paid.IsPositive():
		return PaymentDue
	case !due.IsPositive():
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// Invoice is billed from a confirmed quotation. Customer details, items and
// amounts are copied at conversion time and never change afterwards; only the
// paid and due amounts move as payments are recorded.
type Invoice struct {
	ID                   uuid.UUID        `json:"id"`
	ShopID               uuid.UUID        `json:"shop_id"`
	QuotationID          uuid.UUID        `json:"quotation_id"`
	CustomerID           uuid.UUID        `json:"customer_id"`
	InvoiceNumber        string           `json:"invoice_number"`
	InvoiceType          Type             `json:"invoice_type"`
	InvoiceDate          time.Time        `json:"invoice_date"`
	BillingType          gst.BillingType  `json:"billing_type"`
	CustomerName         string           `json:"customer_name"`
	CustomerMobile       string           `json:"customer_mobile,omitempty"`
	CustomerAddress      string           `json:"customer_address,omitempty"`
	CustomerGSTIN        string           `json:"customer_gstin,omitempty"`
	CustomerState        string           `json:"customer_state,omitempty"`
	Subtotal             decimal.Decimal  `json:"subtotal"`
	InstallationCharge   decimal.Decimal  `json:"installation_charge"`
	TransportationCharge decimal.Decimal  `json:"transportation_charge"`
	Discount             decimal.Decimal  `json:"discount"`
	GSTPercentage        *decimal.Decimal `json:"gst_percentage"`
	CGST                 *decimal.Decimal `json:"cgst"`
	SGST                 *decimal.Decimal `json:"sgst"`
	IGST                 *decimal.Decimal `json:"igst"`
	GSTAmount            decimal.Decimal  `json:"gst_amount"`
	GrandTotal           decimal.Decimal  `json:"grand_total"`
	PaidAmount           decimal.Decimal  `json:"paid_amount"`
	DueAmount            decimal.Decimal  `json:"due_amount"`
	PaymentStatus        PaymentStatus    `json:"payment_status"`
	CreatedBy            string           `json:"created_by"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	Items                []*Item          `json:"items,omitempty"`
	Payments             []*Payment       `json:"payments,omitempty"`
}

type Item struct {
	ID          uuid.UUID       `json:"id"`
	GlassType   string          `json:"glass_type"`
	Thickness   string          `json:"thickness,omitempty"`
	Height      decimal.Decimal `json:"height"`
	Width       decimal.Decimal `json:"width"`
	HeightUnit  gst.Unit        `json:"height_unit"`
	WidthUnit   gst.Unit        `json:"width_unit"`
	Design      string          `json:"design,omitempty"`
	Quantity    int             `json:"quantity"`
	RatePerSqft decimal.Decimal `json:"rate_per_sqft"`
	Area        decimal.Decimal `json:"area"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Description string          `json:"description,omitempty"`
	ItemOrder   int             `json:"item_order"`
}

func itemFrom(it *quotation.Item) *Item {
	return &Item{
		ID:          uuid.New(),
		GlassType:   it.GlassType,
		Thickness:   it.Thickness,
		Height:      it.Height,
		Width:       it.Width,
		HeightUnit:  it.HeightUnit,
		WidthUnit:   it.WidthUnit,
		Design:      it.Design,
		Quantity:    it.Quantity,
		RatePerSqft: it.RatePerSqft,
		Area:        it.Area,
		Subtotal:    it.Subtotal,
		HSNCode:     it.HSNCode,
		Description: it.Description,
		ItemOrder:   it.ItemOrder,
	}
}

type Payment struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	ShopID          uuid.UUID       `json:"shop_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMode     PaymentMode     `json:"payment_mode"`
	PaymentDate     time.Time       `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	BankName        string          `json:"bank_name,omitempty"`
	ChequeNumber    string          `json:"cheque_number,omitempty"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ConvertRequest struct {
	QuotationID uuid.UUID `json:"quotationId" validate:"required"`
	InvoiceType Type      `json:"invoiceType" validate:"required,oneof=ADVANCE FINAL"`
	InvoiceDate string    `json:"invoiceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type PaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentMode     PaymentMode     `json:"paymentMode" validate:"required"`
	PaymentDate     string          `json:"paymentDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" validate:"max=60"`
	BankName        string          `json:"bankName,omitempty" validate:"max=60"`
	ChequeNumber    string          `json:"chequeNumber,omitempty" validate:"max=30"`
	TransactionID   string          `json:"transactionId,omitempty" validate:"max=60"`
	Notes           string          `json:"notes,omitempty" validate:"max=500"`
}

// PaymentResult is returned after recording a payment.
type PaymentResult struct {
	Payment *Payment `json:"payment"`
	Invoice *Invoice `json:"invoice"`
}
