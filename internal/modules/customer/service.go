package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

type Service interface {
	Create(ctx context.Context, p tenant.Principal, req Request) (*Customer, error)
	Get(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Customer, error)
	List(ctx context.Context, p tenant.Principal, query string) ([]*Customer, error)
	Update(ctx context.Context, p tenant.Principal, id uuid.UUID, req Request) (*Customer, error)
	Delete(ctx context.Context, p tenant.Principal, id uuid.UUID) error
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, log: log}
}

func (s *service) Create(ctx context.Context, p tenant.Principal, req Request) (*Customer, error) {
	c := &Customer{ID: uuid.New(), ShopID: p.ShopID}
	apply(c, req)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("customer created",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("customer_id", c.ID.String()),
	)
	return c, nil
}

func (s *service) Get(ctx context.Context, p tenant.Principal, id uuid.UUID) (*Customer, error) {
	return s.repo.GetByID(ctx, p.ShopID, id)
}

func (s *service) List(ctx context.Context, p tenant.Principal, query string) ([]*Customer, error) {
	return s.repo.List(ctx, p.ShopID, strings.TrimSpace(query))
}

func (s *service) Update(ctx context.Context, p tenant.Principal, id uuid.UUID, req Request) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, p.ShopID, id)
	if err != nil {
		return nil, err
	}
	apply(c, req)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete fails with a conflict while quotations or invoices still reference the customer.
func (s *service) Delete(ctx context.Context, p tenant.Principal, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, p.ShopID, id); err != nil {
		return err
	}
	s.log.Info("customer deleted",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("customer_id", id.String()),
	)
	return nil
}

func apply(c *Customer, req Request) {
	c.Name = strings.TrimSpace(req.Name)
	c.Mobile = strings.TrimSpace(req.Mobile)
	c.Email = strings.TrimSpace(req.Email)
	c.Address = strings.TrimSpace(req.Address)
	c.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
	c.State = strings.TrimSpace(req.State)
}
