package quotation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
	"github.com/BUNNY1710/glassshop-backend/internal/gst"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/customer"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/shop"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

// NumberKind prefixes quotation numbers: Q-YYYY-MM-NNNN.
const NumberKind = "Q"

type Service interface {
	Create(ctx context.Context, p tenant.Principal, req CreateRequest) (*Quotation, error)
	Get(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Quotation, error)
	List(ctx context.Context, p tenant.Principal, status Status) ([]*Quotation, error)
	Send(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Quotation, error)
	Confirm(ctx context.Context, p tenant.Principal, id uuid.UUID, req ConfirmRequest) (*Quotation, error)
	Update(ctx context.Context, p tenant.Principal, id uuid.UUID, req UpdateRequest) (*Quotation, error)
	Delete(ctx context.Context, p tenant.Principal, id uuid.UUID) error
}

type service struct {
	repo      Repository
	customers customer.Repository
	shops     shop.Repository
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, customers customer.Repository, shops shop.Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, customers: customers, shops: shops, log: log, now: time.Now}
}

// validTransitions is the status state machine. Update moves REJECTED back to DRAFT.
var validTransitions = map[Status][]Status{
	StatusDraft:     {StatusSent, StatusConfirmed, StatusRejected},
	StatusSent:      {StatusConfirmed, StatusRejected},
	StatusRejected:  {StatusDraft},
	StatusConfirmed: {},
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *service) Create(ctx context.Context, p tenant.Principal, req CreateRequest) (*Quotation, error) {
	c, err := s.customers.GetByID(ctx, p.ShopID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q := &Quotation{
		ID:              uuid.New(),
		ShopID:          p.ShopID,
		CustomerID:      c.ID,
		Version:         1,
		Status:          StatusDraft,
		CustomerName:    c.Name,
		CustomerMobile:  c.Mobile,
		CustomerAddress: c.Address,
		CustomerGSTIN:   c.GSTIN,
		CustomerState:   c.State,
		CreatedBy:       p.Username,
	}
	if err := s.price(ctx, q, req.Terms, now); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q, database.MonthlyPrefix(NumberKind, now)); err != nil {
		return nil, err
	}

	s.log.Info("quotation created",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("billing_type", string(q.BillingType)),
		zap.String("grand_total", q.GrandTotal.StringFixed(2)),
	)
	return q, nil
}

// price fills dates, items and totals of q from the request terms.
func (s *service) price(ctx context.Context, q *Quotation, t Terms, now time.Time) error {
	if len(t.Items) == 0 {
		return apperr.Invalid("at least one item is required")
	}
	var err error
	q.QuotationDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if t.QuotationDate != "" {
		if q.QuotationDate, err = parseDate("quotationDate", t.QuotationDate); err != nil {
			return err
		}
	}
	q.ValidUntil = nil
	if t.ValidUntil != "" {
		v, err := parseDate("validUntil", t.ValidUntil)
		if err != nil {
			return err
		}
		if v.Before(q.QuotationDate) {
			return apperr.Invalid("validUntil must not be before the quotation date")
		}
		q.ValidUntil = &v
	}

	items := make([]*Item, 0, len(t.Items))
	subtotal := decimal.Zero
	for i, r := range t.Items {
		hu, err := gst.ParseUnit(r.HeightUnit)
		if err != nil {
			return err
		}
		wu, err := gst.ParseUnit(r.WidthUnit)
		if err != nil {
			return err
		}
		lineTotal, area, err := gst.LineSubtotal(gst.Line{
			Height:      r.Height,
			Width:       r.Width,
			HeightUnit:  hu,
			WidthUnit:   wu,
			Area:        r.Area,
			Quantity:    r.Quantity,
			RatePerSqft: r.RatePerSqft,
		})
		if err != nil {
			return apperr.Invalid("item %d: %s", i+1, apperr.Message(err))
		}
		items = append(items, &Item{
			ID:          uuid.New(),
			GlassType:   strings.TrimSpace(r.GlassType),
			Thickness:   strings.TrimSpace(r.Thickness),
			Height:      r.Height,
			Width:       r.Width,
			HeightUnit:  hu,
			WidthUnit:   wu,
			Design:      strings.TrimSpace(r.Design),
			Quantity:    r.Quantity,
			RatePerSqft: gst.Round2(r.RatePerSqft),
			Area:        area,
			Subtotal:    lineTotal,
			HSNCode:     strings.TrimSpace(r.HSNCode),
			Description: strings.TrimSpace(r.Description),
			ItemOrder:   i,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	if st := strings.TrimSpace(t.CustomerState); st != "" {
		q.CustomerState = st
	}
	sh, err := s.shops.GetShopByID(ctx, q.ShopID)
	if err != nil {
		return err
	}
	b, err := gst.Compute(gst.Input{
		Subtotal:      subtotal,
		Installation:  t.InstallationCharge,
		Transport:     t.TransportCharge,
		Discount:      t.Discount,
		BillingType:   t.BillingType,
		Percentage:    t.GSTPercentage,
		ShopState:     sh.State,
		CustomerState: q.CustomerState,
	})
	if err != nil {
		return err
	}

	q.BillingType = t.BillingType
	q.Items = items
	q.Subtotal = gst.Round2(subtotal)
	q.InstallationCharge = gst.Round2(t.InstallationCharge)
	q.TransportationCharge = gst.Round2(t.TransportCharge)
	q.TransportationRequired = t.TransportationRequired
	q.Discount = gst.Round2(t.Discount)
	q.GSTPercentage, q.CGST, q.SGST, q.IGST = b.Percentage, b.CGST, b.SGST, b.IGST
	q.GSTAmount = b.GSTAmount
	q.GrandTotal = b.GrandTotal
	q.Polish = strings.TrimSpace(t.Polish)
	return nil
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, apperr.Invalid("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Quotation, error) {
	return s.repo.GetByID(ctx, p.ShopID, id)
}

func (s *service) List(ctx context.Context, p tenant.Principal, status Status) ([]*Quotation, error) {
	if status != "" {
		if _, ok := validTransitions[status]; !ok {
			return nil, apperr.Invalid("unknown status %q", status)
		}
	}
	return s.repo.List(ctx, p.ShopID, status)
}

func (s *service) Send(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Quotation, error) {
	q, err := s.repo.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, err
	}
	if q.Status != StatusDraft {
		return nil, apperr.Invalid("cannot change quotation from %s to %s", q.Status, StatusSent)
	}
	q.Status = StatusSent
	if err := s.repo.UpdateStatus(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Confirm(ctx context.Context, p tenant.Principal, id uuid.UUID, req ConfirmRequest) (*Quotation, error) {
	if req.Action != StatusConfirmed && req.Action != StatusRejected {
		return nil, apperr.Invalid("action must be CONFIRMED or REJECTED")
	}
	q, err := s.repo.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, err
	}
	if q.Status == StatusConfirmed {
		return nil, apperr.Invalid("quotation is already confirmed")
	}
	if !canTransition(q.Status, req.Action) {
		return nil, apperr.Invalid("cannot change quotation from %s to %s", q.Status, req.Action)
	}

	q.Status = req.Action
	if req.Action == StatusConfirmed {
		at := s.now().UTC()
		q.ConfirmedAt = &at
		q.ConfirmedBy = p.Username
		q.RejectionReason = ""
	} else {
		q.RejectionReason = strings.TrimSpace(req.RejectionReason)
	}
	if err := s.repo.UpdateStatus(ctx, q); err != nil {
		return nil, err
	}

	s.log.Info("quotation status changed",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("status", string(q.Status)),
		zap.String("username", p.Username),
	)
	return q, nil
}

// Update reprices a quotation in place and bumps its version. A rejected
// quotation returns to DRAFT.
func (s *service) Update(ctx context.Context, p tenant.Principal, id uuid.UUID, req UpdateRequest) (*Quotation, error) {
	q, err := s.repo.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, err
	}
	if q.Status == StatusConfirmed {
		return nil, apperr.Invalid("a confirmed quotation cannot be updated")
	}
	if req.BillingType != q.BillingType {
		return nil, apperr.Invalid("billing type cannot be changed from %s to %s", q.BillingType, req.BillingType)
	}
	if err := s.price(ctx, q, req.Terms, q.QuotationDate); err != nil {
		return nil, err
	}
	if q.Status == StatusRejected {
		q.Status = StatusDraft
	}
	q.RejectionReason = ""
	q.Version++
	if err := s.repo.Replace(ctx, q); err != nil {
		return nil, err
	}

	s.log.Info("quotation updated",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("quotation_number", q.QuotationNumber),
		zap.Int("version", q.Version),
	)
	return q, nil
}

func (s *service) Delete(ctx context.Context, p tenant.Principal, id uuid.UUID) error {
	err := s.repo.Delete(ctx, p.ShopID, id)
	if errors.Is(err, apperr.ErrConflict) {
		return apperr.Conflict("quotation has invoices and cannot be deleted")
	}
	return err
}
