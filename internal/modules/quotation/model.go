package quotation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/gst"
)

// Status is the lifecycle state of a quotation.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

// DateLayout is the wire format of quotation dates.
const DateLayout = "2006-01-02"

type Quotation struct {
	ID                     uuid.UUID        `json:"id"`
	ShopID                 uuid.UUID        `json:"shop_id"`
	CustomerID             uuid.UUID        `json:"customer_id"`
	QuotationNumber        string           `json:"quotation_number"`
	Version                int              `json:"version"`
	BillingType            gst.BillingType  `json:"billing_type"`
	Status                 Status           `json:"status"`
	CustomerName           string           `json:"customer_name"`
	CustomerMobile         string           `json:"customer_mobile,omitempty"`
	CustomerAddress        string           `json:"customer_address,omitempty"`
	CustomerGSTIN          string           `json:"customer_gstin,omitempty"`
	CustomerState          string           `json:"customer_state,omitempty"`
	QuotationDate          time.Time        `json:"quotation_date"`
	ValidUntil             *time.Time       `json:"valid_until,omitempty"`
	Subtotal               decimal.Decimal  `json:"subtotal"`
	InstallationCharge     decimal.Decimal  `json:"installation_charge"`
	TransportationCharge   decimal.Decimal  `json:"transportation_charge"`
	TransportationRequired bool             `json:"transportation_required"`
	Discount               decimal.Decimal  `json:"discount"`
	GSTPercentage          *decimal.Decimal `json:"gst_percentage"`
	CGST                   *decimal.Decimal `json:"cgst"`
	SGST                   *decimal.Decimal `json:"sgst"`
	IGST                   *decimal.Decimal `json:"igst"`
	GSTAmount              decimal.Decimal  `json:"gst_amount"`
	GrandTotal             decimal.Decimal  `json:"grand_total"`
	Polish                 string           `json:"polish,omitempty"`
	ConfirmedAt            *time.Time       `json:"confirmed_at,omitempty"`
	ConfirmedBy            string           `json:"confirmed_by,omitempty"`
	RejectionReason        string           `json:"rejection_reason,omitempty"`
	CreatedBy              string           `json:"created_by"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
	Items                  []*Item          `json:"items,omitempty"`
}

// Item is one priced glass line. Area is in square feet.
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

type ItemRequest struct {
	GlassType   string          `json:"glassType" validate:"required,max=60"`
	Thickness   string          `json:"thickness,omitempty" validate:"max=20"`
	Height      decimal.Decimal `json:"height"`
	Width       decimal.Decimal `json:"width"`
	HeightUnit  string          `json:"heightUnit,omitempty"`
	WidthUnit   string          `json:"widthUnit,omitempty"`
	Area        decimal.Decimal `json:"area"`
	Design      string          `json:"design,omitempty" validate:"max=60"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	RatePerSqft decimal.Decimal `json:"ratePerSqft"`
	HSNCode     string          `json:"hsnCode,omitempty" validate:"max=20"`
	Description string          `json:"description,omitempty" validate:"max=500"`
}

// Terms are the priced parts shared by create and update.
type Terms struct {
	BillingType            gst.BillingType `json:"billingType" validate:"required,oneof=GST NON_GST"`
	QuotationDate          string          `json:"quotationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil             string          `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Items                  []ItemRequest   `json:"items" validate:"required,min=1,dive"`
	InstallationCharge     decimal.Decimal `json:"installationCharge"`
	TransportCharge        decimal.Decimal `json:"transportCharge"`
	TransportationRequired bool            `json:"transportationRequired"`
	Discount               decimal.Decimal `json:"discount"`
	GSTPercentage          decimal.Decimal `json:"gstPercentage"`
	// CustomerState overrides the customer's stored state for the tax split.
	CustomerState string `json:"customerState,omitempty" validate:"max=60"`
	Polish        string `json:"polish,omitempty" validate:"max=40"`
}

type CreateRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
	Terms
}

type UpdateRequest struct {
	Terms
}

type ConfirmRequest struct {
	Action          Status `json:"action" validate:"required,oneof=CONFIRMED REJECTED"`
	RejectionReason string `json:"rejectionReason,omitempty" validate:"max=500"`
}
