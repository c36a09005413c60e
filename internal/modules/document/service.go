// Package document renders quotations and invoices as printable PDFs.
package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/invoice"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/quotation"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/shop"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

// File is a rendered document ready to be sent as an attachment.
type File struct {
	Name string
	Data []byte
}

type Service interface {
	QuotationPDF(ctx context.Context, p tenant.Principal, id uuid.UUID) (*File, error)
	CuttingPad(ctx context.Context, p tenant.Principal, quotationID uuid.UUID) (*File, error)
	// InvoicePDF renders the invoice. basic omits the tax breakdown.
	InvoicePDF(ctx context.Context, p tenant.Principal, id uuid.UUID, basic bool) (*File, error)
	Challan(ctx context.Context, p tenant.Principal, invoiceID uuid.UUID) (*File, error)
}

type service struct {
	quotations quotation.Repository
	invoices   invoice.Repository
	shops      shop.Repository
	log        *zap.Logger
	compress   bool
}

func NewService(quotations quotation.Repository, invoices invoice.Repository, shops shop.Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{quotations: quotations, invoices: invoices, shops: shops, log: log, compress: true}
}

func (s *service) QuotationPDF(ctx context.Context, p tenant.Principal, id uuid.UUID) (*File, error) {
	q, sh, err := s.loadQuotation(ctx, p, id)
	if err != nil {
		return nil, err
	}
	data, err := renderQuotation(sh, q, s.compress)
	if err != nil {
		return nil, err
	}
	return s.file("quotation", q.QuotationNumber, data), nil
}

func (s *service) CuttingPad(ctx context.Context, p tenant.Principal, quotationID uuid.UUID) (*File, error) {
	q, sh, err := s.loadQuotation(ctx, p, quotationID)
	if err != nil {
		return nil, err
	}
	data, err := renderCuttingPad(sh, q, s.compress)
	if err != nil {
		return nil, err
	}
	return s.file("cutting-pad", q.QuotationNumber, data), nil
}

func (s *service) InvoicePDF(ctx context.Context, p tenant.Principal, id uuid.UUID, basic bool) (*File, error) {
	inv, sh, err := s.loadInvoice(ctx, p, id)
	if err != nil {
		return nil, err
	}
	data, err := renderInvoice(sh, inv, basic, s.compress)
	if err != nil {
		return nil, err
	}
	return s.file("invoice", inv.InvoiceNumber, data), nil
}

func (s *service) Challan(ctx context.Context, p tenant.Principal, invoiceID uuid.UUID) (*File, error) {
	inv, sh, err := s.loadInvoice(ctx, p, invoiceID)
	if err != nil {
		return nil, err
	}
	data, err := renderChallan(sh, inv, s.compress)
	if err != nil {
		return nil, err
	}
	return s.file("challan", inv.InvoiceNumber, data), nil
}

func (s *service) loadQuotation(ctx context.Context, p tenant.Principal, id uuid.UUID) (*quotation.Quotation, *shop.Shop, error) {
	q, err := s.quotations.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, nil, err
	}
	sh, err := s.shops.GetShopByID(ctx, p.ShopID)
	if err != nil {
		return nil, nil, err
	}
	return q, sh, nil
}

func (s *service) loadInvoice(ctx context.Context, p tenant.Principal, id uuid.UUID) (*invoice.Invoice, *shop.Shop, error) {
	inv, err := s.invoices.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, nil, err
	}
	sh, err := s.shops.GetShopByID(ctx, p.ShopID)
	if err != nil {
		return nil, nil, err
	}
	return inv, sh, nil
}

func (s *service) file(kind, number string, data []byte) *File {
	s.log.Debug("document rendered",
		zap.String("kind", kind),
		zap.String("number", number),
		zap.Int("bytes", len(data)),
	)
	return &File{Name: fmt.Sprintf("%s-%s.pdf", kind, number), Data: data}
}
