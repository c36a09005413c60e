package invoice

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
	"github.com/BUNNY1710/glassshop-backend/internal/modules/quotation"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

// NumberKind prefixes invoice numbers: INV-YYYY-MM-NNNN.
const NumberKind = "INV"

type Service interface {
	ConvertFromQuotation(ctx context.Context, p tenant.Principal, req ConvertRequest) (*Invoice, error)
	RecordPayment(ctx context.Context, p tenant.Principal, id uuid.UUID, req PaymentRequest) (*PaymentResult, error)
	// Get returns the invoice with its items and payments.
	Get(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, p tenant.Principal, status PaymentStatus) ([]*Invoice, error)
	Payments(ctx context.Context, p tenant.Principal, id uuid.UUID) ([]*Payment, error)
}

type service struct {
	repo       Repository
	quotations quotation.Repository
	log        *zap.Logger
	now        func() time.Time
}

func NewService(repo Repository, quotations quotation.Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, quotations: quotations, log: log, now: time.Now}
}

func (s *service) ConvertFromQuotation(ctx context.Context, p tenant.Principal, req ConvertRequest) (*Invoice, error) {
	if req.InvoiceType != TypeAdvance && req.InvoiceType != TypeFinal {
		return nil, apperr.Invalid("invoice type must be ADVANCE or FINAL")
	}
	q, err := s.quotations.GetByID(ctx, p.ShopID, req.QuotationID)
	if err != nil {
		return nil, err
	}
	if q.Status != quotation.StatusConfirmed {
		return nil, apperr.Invalid("only confirmed quotations can be invoiced, quotation %s is %s",
			q.QuotationNumber, q.Status)
	}

	now := s.now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.InvoiceDate != "" {
		if date, err = time.Parse(quotation.DateLayout, req.InvoiceDate); err != nil {
			return nil, apperr.Invalid("invoiceDate must be a date in YYYY-MM-DD format")
		}
	}

	inv := &Invoice{
		ID:                   uuid.New(),
		ShopID:               p.ShopID,
		QuotationID:          q.ID,
		CustomerID:           q.CustomerID,
		InvoiceType:          req.InvoiceType,
		InvoiceDate:          date,
		BillingType:          q.BillingType,
		CustomerName:         q.CustomerName,
		CustomerMobile:       q.CustomerMobile,
		CustomerAddress:      q.CustomerAddress,
		CustomerGSTIN:        q.CustomerGSTIN,
		CustomerState:        q.CustomerState,
		Subtotal:             q.Subtotal,
		InstallationCharge:   q.InstallationCharge,
		TransportationCharge: q.TransportationCharge,
		Discount:             q.Discount,
		GSTPercentage:        q.GSTPercentage,
		CGST:                 q.CGST,
		SGST:                 q.SGST,
		IGST:                 q.IGST,
		GSTAmount:            q.GSTAmount,
		GrandTotal:           q.GrandTotal,
		PaidAmount:           decimal.Zero,
		DueAmount:            q.GrandTotal,
		PaymentStatus:        PaymentDue,
		CreatedBy:            p.Username,
	}
	for _, it := range q.Items {
		inv.Items = append(inv.Items, itemFrom(it))
	}

	if err := s.repo.Create(ctx, inv, database.MonthlyPrefix(NumberKind, now)); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("a %s invoice already exists for quotation %s", inv.InvoiceType, q.QuotationNumber)
		}
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("invoice_type", string(inv.InvoiceType)),
		zap.String("grand_total", inv.GrandTotal.StringFixed(2)),
	)
	return inv, nil
}

func (s *service) RecordPayment(ctx context.Context, p tenant.Principal, id uuid.UUID, req PaymentRequest) (*PaymentResult, error) {
	amount := gst.Round2(req.Amount)
	if !amount.IsPositive() {
		return nil, apperr.Invalid("payment amount must be greater than 0")
	}
	mode := PaymentMode(strings.ToUpper(strings.TrimSpace(string(req.PaymentMode))))
	switch mode {
	case ModeCash, ModeUPI, ModeBank, ModeSplit:
	default:
		return nil, apperr.Invalid("payment mode must be one of CASH, UPI, BANK, SPLIT")
	}
	now := s.now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.PaymentDate != "" {
		var err error
		if date, err = time.Parse(quotation.DateLayout, req.PaymentDate); err != nil {
			return nil, apperr.Invalid("paymentDate must be a date in YYYY-MM-DD format")
		}
	}

	inv, pay, err := s.repo.ApplyPayment(ctx, p.ShopID, id, func(inv *Invoice) (*Payment, error) {
		if !inv.DueAmount.IsPositive() {
			return nil, apperr.Invalid("invoice %s is already fully paid", inv.InvoiceNumber)
		}
		if amount.GreaterThan(inv.DueAmount) {
			return nil, apperr.Invalid("payment amount %s exceeds the due amount %s",
				amount.StringFixed(2), inv.DueAmount.StringFixed(2))
		}
		inv.PaidAmount = inv.PaidAmount.Add(amount)
		inv.DueAmount = inv.GrandTotal.Sub(inv.PaidAmount)
		inv.PaymentStatus = StatusFor(inv.PaidAmount, inv.DueAmount)
		return &Payment{
			ID:              uuid.New(),
			InvoiceID:       inv.ID,
			ShopID:          inv.ShopID,
			Amount:          amount,
			PaymentMode:     mode,
			PaymentDate:     date,
			ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
			BankName:        strings.TrimSpace(req.BankName),
			ChequeNumber:    strings.TrimSpace(req.ChequeNumber),
			TransactionID:   strings.TrimSpace(req.TransactionID),
			Notes:           strings.TrimSpace(req.Notes),
			CreatedBy:       p.Username,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("amount", pay.Amount.StringFixed(2)),
		zap.String("mode", string(pay.PaymentMode)),
		zap.String("payment_status", string(inv.PaymentStatus)),
	)
	return &PaymentResult{Payment: pay, Invoice: inv}, nil
}

func (s *service) Get(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, err
	}
	if inv.Payments, err = s.repo.Payments(ctx, p.ShopID, id); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *service) List(ctx context.Context, p tenant.Principal, status PaymentStatus) ([]*Invoice, error) {
	switch status {
	case "", PaymentDue, PaymentPartial, PaymentPaid:
	default:
		return nil, apperr.Invalid("unknown payment status %q", status)
	}
	return s.repo.List(ctx, p.ShopID, status)
}

func (s *service) Payments(ctx context.Context, p tenant.Principal, id uuid.UUID) ([]*Payment, error) {
	if _, err := s.repo.GetByID(ctx, p.ShopID, id); err != nil {
		return nil, err
	}
	return s.repo.Payments(ctx, p.ShopID, id)
}
