// Package alert sends a scheduled low-stock digest for every shop.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/shop"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/stock"
)

const runTimeout = 2 * time.Minute

// ShopLister is the part of shop.Service the scheduler needs.
type ShopLister interface {
	ListShops(ctx context.Context) ([]*shop.Shop, error)
}

// LowStockSource is the part of stock.Service the scheduler needs.
type LowStockSource interface {
	LowStockForShop(ctx context.Context, shopID uuid.UUID) ([]*stock.Stock, error)
}

type Scheduler struct {
	cron     *cron.Cron
	spec     string
	shops    ShopLister
	stocks   LowStockSource
	notifier Notifier
	log      *zap.Logger
}

func NewScheduler(spec string, shops ShopLister, stocks LowStockSource, notifier Notifier, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		spec:     spec,
		shops:    shops,
		stocks:   stocks,
		notifier: notifier,
		log:      log,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
		return fmt.Errorf("schedule low stock alert %q: %w", s.spec, err)
	}
	s.log.Info("starting alert scheduler", zap.String("cron", s.spec))
	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.log.Info("stopping alert scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := s.Run(ctx); err != nil {
		s.log.Error("low stock alert run failed", zap.Error(err))
	}
}

// Run sends one digest per shop with low stock and returns how many were sent.
// A failing shop is logged and skipped.
func (s *Scheduler) Run(ctx context.Context) (int, error) {
	shops, err := s.shops.ListShops(ctx)
	if err != nil {
		return 0, fmt.Errorf("list shops: %w", err)
	}

	sent := 0
	for _, sh := range shops {
		rows, err := s.stocks.LowStockForShop(ctx, sh.ID)
		if err != nil {
			s.log.Error("load low stock", zap.String("shop_id", sh.ID.String()), zap.Error(err))
			continue
		}
		if len(rows) == 0 {
			continue
		}
		d := Digest{ShopID: sh.ID, ShopName: sh.Name, Text: stock.LowStockText(rows)}
		if err := s.notifier.Notify(ctx, d); err != nil {
			s.log.Error("send low stock digest", zap.String("shop_id", sh.ID.String()), zap.Error(err))
			continue
		}
		sent++
	}
	s.log.Info("low stock alert run finished", zap.Int("shops", len(shops)), zap.Int("sent", sent))
	return sent, nil
}
