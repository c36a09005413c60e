package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
)

// fakeRepo is an in-memory Repository. WithinTx restores the previous state
// when the callback fails, like a rolled back transaction.
type fakeRepo struct {
	glasses   map[string]*catalog.Glass
	stock     []*Stock
	history   []*History
	audits    []*audit.Entry
	clock     time.Time
	lastLimit int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		glasses: map[string]*catalog.Glass{},
		clock:   time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

type snapshot struct {
	glasses map[string]*catalog.Glass
	stock   []*Stock
	history []*History
	audits  []*audit.Entry
}

func (f *fakeRepo) snapshot() snapshot {
	s := snapshot{glasses: map[string]*catalog.Glass{}}
	for k, g := range f.glasses {
		s.glasses[k] = g
	}
	for _, row := range f.stock {
		c := *row
		s.stock = append(s.stock, &c)
	}
	s.history = append(s.history, f.history...)
	s.audits = append(s.audits, f.audits...)
	return s
}

func (f *fakeRepo) restore(s snapshot) {
	f.glasses, f.stock, f.history, f.audits = s.glasses, s.stock, s.history, s.audits
}

func (f *fakeRepo) WithinTx(_ context.Context, fn func(tx TxRepository) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeRepo) ResolveGlass(_ context.Context, spec catalog.Spec) (*catalog.Glass, error) {
	key := fmt.Sprintf("%s|%d|%s", spec.Type, spec.Thickness, spec.Unit)
	if g, ok := f.glasses[key]; ok {
		return g, nil
	}
	g := &catalog.Glass{ID: uuid.New(), Type: spec.Type, Thickness: spec.Thickness, Unit: spec.Unit}
	f.glasses[key] = g
	return g, nil
}

func (f *fakeRepo) find(key Key) *Stock {
	for _, row := range f.stock {
		if row.ShopID == key.ShopID && row.Glass.ID == key.GlassID && row.StandNo == key.StandNo &&
			row.Height == key.Height && row.Width == key.Width {
			return row
		}
	}
	return nil
}

func (f *fakeRepo) LockStock(_ context.Context, key Key) (*Stock, error) {
	row := f.find(key)
	if row == nil {
		return nil, apperr.NotFound("stock not found")
	}
	c := *row
	return &c, nil
}

func (f *fakeRepo) InsertStock(_ context.Context, s *Stock) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	c := *s
	f.stock = append(f.stock, &c)
	return nil
}

func (f *fakeRepo) SetQuantity(_ context.Context, id uuid.UUID, qty int) error {
	for _, row := range f.stock {
		if row.ID == id {
			row.Quantity = qty
			return nil
		}
	}
	return apperr.NotFound("stock not found")
}

func (f *fakeRepo) AppendHistory(_ context.Context, h *History) error {
	h.ID = uuid.New()
	f.clock = f.clock.Add(time.Minute)
	h.CreatedAt = f.clock
	f.history = append(f.history, h)
	return nil
}

func (f *fakeRepo) LatestHistory(_ context.Context, shopID uuid.UUID) (*History, error) {
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].ShopID == shopID {
			return f.history[i], nil
		}
	}
	return nil, apperr.NotFound("history not found")
}

func (f *fakeRepo) DeleteHistory(_ context.Context, id uuid.UUID) error {
	for i, h := range f.history {
		if h.ID == id {
			f.history = append(f.history[:i:i], f.history[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) AppendAudit(_ context.Context, e *audit.Entry) error {
	f.audits = append(f.audits, e)
	return nil
}

func (f *fakeRepo) ListByShop(_ context.Context, shopID uuid.UUID) ([]*Stock, error) {
	out := []*Stock{}
	for _, row := range f.stock {
		if row.ShopID == shopID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLow(ctx context.Context, shopID uuid.UUID) ([]*Stock, error) {
	all, _ := f.ListByShop(ctx, shopID)
	out := []*Stock{}
	for _, row := range all {
		if row.IsLow() {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByGlassType(ctx context.Context, shopID uuid.UUID, glassType string) ([]*Stock, error) {
	all, _ := f.ListByShop(ctx, shopID)
	out := []*Stock{}
	for _, row := range all {
		if row.Glass.Type == glassType && row.Quantity > 0 {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) RecentHistory(_ context.Context, shopID uuid.UUID, limit int) ([]*History, error) {
	f.lastLimit = limit
	out := []*History{}
	for _, h := range f.history {
		if h.ShopID == shopID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) SetMinQuantity(_ context.Context, shopID, id uuid.UUID, minQty int) (*Stock, error) {
	for _, row := range f.stock {
		if row.ID == id && row.ShopID == shopID {
			row.MinQuantity = minQty
			return row, nil
		}
	}
	return nil, apperr.NotFound("stock not found")
}

// quantityAt returns the stored quantity of glassType at stand, or -1 when no row exists.
func (f *fakeRepo) quantityAt(glassType string, stand int) int {
	for _, row := range f.stock {
		if row.Glass.Type == glassType && row.StandNo == stand {
			return row.Quantity
		}
	}
	return -1
}
