package stock

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100

	// MaxSuggestions caps the reorder list.
	MaxSuggestions = 5
)

var errNotEnoughStock = apperr.Invalid("not enough stock")

// Service defines stock business logic. Every mutation writes the stock rows,
// one history row and one audit row in a single transaction.
type Service interface {
	UpdateStock(ctx context.Context, p tenant.Principal, req UpdateRequest) (*Result, error)
	Transfer(ctx context.Context, p tenant.Principal, req TransferRequest) (*Result, error)
	UndoLast(ctx context.Context, p tenant.Principal) (*Result, error)

	ListAll(ctx context.Context, p tenant.Principal) ([]*Stock, error)
	Recent(ctx context.Context, p tenant.Principal, limit int) ([]*History, error)
	LowStock(ctx context.Context, p tenant.Principal) ([]*Stock, error)
	LowStockForShop(ctx context.Context, shopID uuid.UUID) ([]*Stock, error)
	Available(ctx context.Context, p tenant.Principal, glassType string) ([]*Stock, error)
	SetMinQuantity(ctx context.Context, p tenant.Principal, id uuid.UUID, minQty int) (*Stock, error)
	ReorderSuggestions(ctx context.Context, p tenant.Principal) ([]*Suggestion, error)
}

type service struct {
	repo       Repository
	defaultMin int
	log        *zap.Logger
}

// NewService creates a stock service. defaultMin is the min_quantity given to
// rows created without an explicit threshold.
func NewService(repo Repository, defaultMin int, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, defaultMin: defaultMin, log: log}
}

func (s *service) UpdateStock(ctx context.Context, p tenant.Principal, req UpdateRequest) (*Result, error) {
	if req.Action != audit.ActionAdd && req.Action != audit.ActionRemove {
		return nil, apperr.Invalid("invalid action")
	}
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than 0")
	}
	if req.StandNo <= 0 {
		return nil, apperr.Invalid("stand number must be greater than 0")
	}
	spec, err := catalog.Normalize(catalog.Spec{Type: req.GlassType, Thickness: req.Thickness, Unit: req.Unit})
	if err != nil {
		return nil, err
	}
	minQty := s.defaultMin
	if req.MinQuantity != nil {
		minQty = *req.MinQuantity
	}
	height, width := strings.TrimSpace(req.Height), strings.TrimSpace(req.Width)

	var row *Stock
	err = s.repo.WithinTx(ctx, func(tx TxRepository) error {
		glass, err := tx.ResolveGlass(ctx, spec)
		if err != nil {
			return err
		}
		key := Key{ShopID: p.ShopID, GlassID: glass.ID, StandNo: req.StandNo, Height: height, Width: width}
		delta := req.Quantity
		if req.Action == audit.ActionRemove {
			delta = -delta
		}
		if row, err = s.adjust(ctx, tx, glass, key, delta, minQty); err != nil {
			return err
		}
		return s.record(ctx, tx, p, glass, req.Action, key, nil, req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock updated",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("username", p.Username),
		zap.String("action", string(req.Action)),
		zap.String("glass_type", spec.Type),
		zap.Int("stand_no", req.StandNo),
		zap.Int("quantity", req.Quantity),
	)
	return &Result{Message: "Stock updated successfully", Stock: row}, nil
}

func (s *service) Transfer(ctx context.Context, p tenant.Principal, req TransferRequest) (*Result, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than 0")
	}
	if req.FromStand <= 0 || req.ToStand <= 0 {
		return nil, apperr.Invalid("stand number must be greater than 0")
	}
	if req.FromStand == req.ToStand {
		return nil, apperr.Invalid("source and destination stand must be different")
	}
	spec, err := catalog.Normalize(catalog.Spec{Type: req.GlassType, Thickness: req.Thickness, Unit: req.Unit})
	if err != nil {
		return nil, err
	}
	height, width := strings.TrimSpace(req.Height), strings.TrimSpace(req.Width)

	var dst *Stock
	err = s.repo.WithinTx(ctx, func(tx TxRepository) error {
		glass, err := tx.ResolveGlass(ctx, spec)
		if err != nil {
			return err
		}
		from := Key{ShopID: p.ShopID, GlassID: glass.ID, StandNo: req.FromStand, Height: height, Width: width}
		to := from
		to.StandNo = req.ToStand
		if dst, err = s.move(ctx, tx, glass, from, to, req.Quantity); err != nil {
			return err
		}
		toStand := req.ToStand
		return s.record(ctx, tx, p, glass, audit.ActionTransfer, from, &toStand, req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock transferred",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("username", p.Username),
		zap.String("glass_type", spec.Type),
		zap.Int("from_stand", req.FromStand),
		zap.Int("to_stand", req.ToStand),
		zap.Int("quantity", req.Quantity),
	)
	return &Result{Message: "Stock transferred successfully", Stock: dst}, nil
}

func (s *service) UndoLast(ctx context.Context, p tenant.Principal) (*Result, error) {
	var undone *History
	err := s.repo.WithinTx(ctx, func(tx TxRepository) error {
		h, err := tx.LatestHistory(ctx, p.ShopID)
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("no action to undo")
		}
		if err != nil {
			return err
		}
		key := Key{ShopID: p.ShopID, GlassID: h.Glass.ID, StandNo: h.StandNo, Height: h.Height, Width: h.Width}

		switch h.Action {
		case audit.ActionAdd:
			_, err = s.adjust(ctx, tx, h.Glass, key, -h.Quantity, s.defaultMin)
		case audit.ActionRemove:
			_, err = s.adjust(ctx, tx, h.Glass, key, h.Quantity, s.defaultMin)
		case audit.ActionTransfer:
			if h.ToStandNo == nil {
				return apperr.Invalid("transfer history has no destination stand")
			}
			to := key
			to.StandNo = *h.ToStandNo
			_, err = s.move(ctx, tx, h.Glass, to, key, h.Quantity)
		default:
			return apperr.Invalid("cannot undo action %s", h.Action)
		}
		if errors.Is(err, errNotEnoughStock) {
			return apperr.Invalid("cannot undo: not enough stock left to reverse the last %s", strings.ToLower(string(h.Action)))
		}
		if err != nil {
			return err
		}
		if err := tx.DeleteHistory(ctx, h.ID); err != nil {
			return err
		}
		undone = h
		return s.record(ctx, tx, p, h.Glass, audit.ActionUndo, key, h.ToStandNo, h.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stock action undone",
		zap.String("shop_id", p.ShopID.String()),
		zap.String("username", p.Username),
		zap.String("undone_action", string(undone.Action)),
		zap.String("history_id", undone.ID.String()),
	)
	return &Result{Message: "Last action undone successfully"}, nil
}

// adjust applies delta to the row at key. A missing row is created for a
// positive delta. The quantity never drops below zero.
func (s *service) adjust(ctx context.Context, tx TxRepository, glass *catalog.Glass, key Key, delta, minQty int) (*Stock, error) {
	row, err := tx.LockStock(ctx, key)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		if delta < 0 {
			return nil, errNotEnoughStock
		}
		row = &Stock{
			ShopID:      key.ShopID,
			Glass:       glass,
			StandNo:     key.StandNo,
			Height:      key.Height,
			Width:       key.Width,
			Quantity:    delta,
			MinQuantity: minQty,
		}
		return row, tx.InsertStock(ctx, row)
	case err != nil:
		return nil, err
	}
	if row.Quantity+delta < 0 {
		return nil, errNotEnoughStock
	}
	row.Quantity += delta
	return row, tx.SetQuantity(ctx, row.ID, row.Quantity)
}

// move shifts qty from one stand to another and returns the destination row.
// Rows are locked in ascending stand order.
func (s *service) move(ctx context.Context, tx TxRepository, glass *catalog.Glass, from, to Key, qty int) (*Stock, error) {
	if from.StandNo < to.StandNo {
		if _, err := s.adjust(ctx, tx, glass, from, -qty, s.defaultMin); err != nil {
			return nil, err
		}
		return s.adjust(ctx, tx, glass, to, qty, s.defaultMin)
	}
	dst, err := s.adjust(ctx, tx, glass, to, qty, s.defaultMin)
	if err != nil {
		return nil, err
	}
	if _, err := s.adjust(ctx, tx, glass, from, -qty, s.defaultMin); err != nil {
		return nil, err
	}
	return dst, nil
}

// record writes the history row (except for undo) and the audit row of a movement.
func (s *service) record(ctx context.Context, tx TxRepository, p tenant.Principal, glass *catalog.Glass,
	action audit.Action, key Key, toStand *int, qty int) error {
	if action != audit.ActionUndo {
		h := &History{
			ShopID:    p.ShopID,
			Glass:     glass,
			StandNo:   key.StandNo,
			ToStandNo: toStand,
			Height:    key.Height,
			Width:     key.Width,
			Quantity:  qty,
			Action:    action,
			Username:  p.Username,
		}
		if err := tx.AppendHistory(ctx, h); err != nil {
			return err
		}
	}
	return tx.AppendAudit(ctx, &audit.Entry{
		ShopID:    p.ShopID,
		Username:  p.Username,
		Role:      p.Role,
		Action:    action,
		GlassType: glass.Type,
		Quantity:  qty,
		StandNo:   key.StandNo,
		ToStandNo: toStand,
		Height:    key.Height,
		Width:     key.Width,
		Unit:      glass.Unit,
	})
}

func (s *service) ListAll(ctx context.Context, p tenant.Principal) ([]*Stock, error) {
	return s.repo.ListByShop(ctx, p.ShopID)
}

func (s *service) Recent(ctx context.Context, p tenant.Principal, limit int) ([]*History, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}
	return s.repo.RecentHistory(ctx, p.ShopID, limit)
}

func (s *service) LowStock(ctx context.Context, p tenant.Principal) ([]*Stock, error) {
	return s.repo.ListLow(ctx, p.ShopID)
}

// LowStockForShop serves callers without a principal, such as the alert scheduler.
func (s *service) LowStockForShop(ctx context.Context, shopID uuid.UUID) ([]*Stock, error) {
	return s.repo.ListLow(ctx, shopID)
}

func (s *service) Available(ctx context.Context, p tenant.Principal, glassType string) ([]*Stock, error) {
	glassType = strings.ToUpper(strings.Join(strings.Fields(glassType), ""))
	if glassType == "" {
		return nil, apperr.Invalid("glass type is required")
	}
	return s.repo.ListByGlassType(ctx, p.ShopID, glassType)
}

func (s *service) SetMinQuantity(ctx context.Context, p tenant.Principal, id uuid.UUID, minQty int) (*Stock, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("only admins can change the minimum quantity")
	}
	if minQty < 0 {
		return nil, apperr.Invalid("minimum quantity must not be negative")
	}
	return s.repo.SetMinQuantity(ctx, p.ShopID, id, minQty)
}

func (s *service) ReorderSuggestions(ctx context.Context, p tenant.Principal) ([]*Suggestion, error) {
	low, err := s.repo.ListLow(ctx, p.ShopID)
	if err != nil {
		return nil, err
	}
	return Suggest(low, MaxSuggestions), nil
}

// Suggest ranks low rows by how far they are below their threshold and
// recommends ordering twice the threshold. limit <= 0 keeps every row.
func Suggest(rows []*Stock, limit int) []*Suggestion {
	out := []*Suggestion{}
	for _, r := range rows {
		if !r.IsLow() {
			continue
		}
		glassType := ""
		if r.Glass != nil {
			glassType = r.Glass.Type
		}
		out = append(out, &Suggestion{
			GlassType:      glassType,
			StandNo:        r.StandNo,
			Height:         r.Height,
			Width:          r.Width,
			Quantity:       r.Quantity,
			MinQuantity:    r.MinQuantity,
			Gap:            r.MinQuantity - r.Quantity,
			RecommendedQty: r.MinQuantity * 2,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Gap > out[j].Gap })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
