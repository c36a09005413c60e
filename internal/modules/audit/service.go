package audit

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// csvHeader is the column order of the audit export.
var csvHeader = []string{"Username", "Role", "Action", "Glass Type", "Quantity", "Stand No", "To Stand", "Height", "Width", "Unit", "Date"}

type Service interface {
	// Recent returns the newest entries of the caller's shop. Admin only.
	Recent(ctx context.Context, p tenant.Principal, limit int) ([]*Entry, error)

	TransferCount(ctx context.Context, p tenant.Principal) (*TransferCount, error)

	// ExportCSV writes every entry of the caller's shop as CSV. Admin only.
	ExportCSV(ctx context.Context, p tenant.Principal, w io.Writer) error

	// List is used by reporting features that aggregate over the trail.
	List(ctx context.Context, shopID uuid.UUID, f Filter) ([]*Entry, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Recent(ctx context.Context, p tenant.Principal, limit int) ([]*Entry, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can view the audit log")
	}
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}
	return s.repo.List(ctx, p.ShopID, Filter{Limit: limit})
}

func (s *service) TransferCount(ctx context.Context, p tenant.Principal) (*TransferCount, error) {
	n, err := s.repo.CountByAction(ctx, p.ShopID, ActionTransfer)
	if err != nil {
		return nil, err
	}
	return &TransferCount{Count: n}, nil
}

func (s *service) ExportCSV(ctx context.Context, p tenant.Principal, w io.Writer) error {
	if !p.IsAdmin() {
		return apperr.Forbidden("only admins can export the audit log")
	}
	entries, err := s.repo.List(ctx, p.ShopID, Filter{})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		toStand := ""
		if e.ToStandNo != nil {
			toStand = strconv.Itoa(*e.ToStandNo)
		}
		record := []string{
			e.Username,
			e.Role,
			string(e.Action),
			e.GlassType,
			strconv.Itoa(e.Quantity),
			strconv.Itoa(e.StandNo),
			toStand,
			e.Height,
			e.Width,
			e.Unit,
			e.CreatedAt.Format("02-01-2006 15:04"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *service) List(ctx context.Context, shopID uuid.UUID, f Filter) ([]*Entry, error) {
	return s.repo.List(ctx, shopID, f)
}
