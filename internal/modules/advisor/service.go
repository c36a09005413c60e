// Package advisor answers stock questions in plain text. Answers are built from
// the stock table and the audit trail; an optional language model only
// rephrases the low-stock summary.
package advisor

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/stock"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

const (
	salesWindow = 30 * 24 * time.Hour
	deadWindow  = 60 * 24 * time.Hour
)

const explainSystem = "You are a stock assistant for a glass shop. Rewrite the low stock report " +
	"below as a short, friendly explanation for the shop owner. Keep every glass type, stand " +
	"number and quantity exactly as given. Do not invent data."

// Completer generates text from a prompt. Satisfied by *anthropic.APIClient.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// AskRequest is the body of POST /ai/ask.
type AskRequest struct {
	Action    string `json:"action" validate:"required"`
	GlassType string `json:"glassType,omitempty"`
}

const (
	AskLowStock  = "LOW_STOCK"
	AskAvailable = "AVAILABLE"
	AskPredict   = "PREDICT"
)

type Service interface {
	// Advice routes a free-text question to one of the canned reports.
	Advice(ctx context.Context, p tenant.Principal, question string) (string, error)
	Ask(ctx context.Context, p tenant.Principal, req AskRequest) (string, error)
	// Explain summarises low stock, rephrased by the language model when one is configured.
	Explain(ctx context.Context, p tenant.Principal) (string, error)
}

type service struct {
	stocks stock.Service
	audits audit.Service
	llm    Completer
	log    *zap.Logger
	now    func() time.Time
}

// NewService builds the advisor. llm may be nil.
func NewService(stocks stock.Service, audits audit.Service, llm Completer, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{stocks: stocks, audits: audits, llm: llm, log: log, now: time.Now}
}

func (s *service) Advice(ctx context.Context, p tenant.Principal, question string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return EmptyQuestionText, nil
	}

	// substring match, checked in order; "slow" therefore lands on reorder
	switch {
	case containsAny(q, "reorder", "restock", "low", "need", "should i buy"):
		low, err := s.stocks.LowStock(ctx, p)
		if err != nil {
			return "", err
		}
		return reorderReport(low), nil
	case containsAny(q, "sell", "selling", "best", "popular", "most sold"):
		removals, err := s.removals(ctx, p, salesWindow)
		if err != nil {
			return "", err
		}
		return bestSellersReport(removals), nil
	case containsAny(q, "dead", "slow", "stagnant", "not moving", "stuck"):
		removals, err := s.removals(ctx, p, deadWindow)
		if err != nil {
			return "", err
		}
		all, err := s.stocks.ListAll(ctx, p)
		if err != nil {
			return "", err
		}
		return deadStockReport(all, removals), nil
	case containsAny(q, "stand", "frequent", "active", "movement", "busy"):
		entries, err := s.audits.List(ctx, p.ShopID, audit.Filter{})
		if err != nil {
			return "", err
		}
		return standActivityReport(entries), nil
	}
	return HelpText, nil
}

func (s *service) Ask(ctx context.Context, p tenant.Principal, req AskRequest) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(req.Action)) {
	case AskLowStock:
		low, err := s.stocks.LowStock(ctx, p)
		if err != nil {
			return "", err
		}
		return stock.LowStockText(low), nil
	case AskAvailable:
		rows, err := s.stocks.Available(ctx, p, req.GlassType)
		if err != nil {
			return "", err
		}
		return availableReport(req.GlassType, rows), nil
	case AskPredict:
		removals, err := s.removals(ctx, p, forecastHistory*24*time.Hour)
		if err != nil {
			return "", err
		}
		all, err := s.stocks.ListAll(ctx, p)
		if err != nil {
			return "", err
		}
		return forecastReport(removals, all), nil
	}
	return InvalidOptionText, nil
}

func (s *service) Explain(ctx context.Context, p tenant.Principal) (string, error) {
	low, err := s.stocks.LowStock(ctx, p)
	if err != nil {
		return "", err
	}
	summary := stock.LowStockText(low)
	if summary == stock.NoLowStockText || s.llm == nil {
		return summary, nil
	}

	text, err := s.llm.Complete(ctx, explainSystem, summary)
	if err != nil {
		s.log.Warn("llm explain failed, using plain summary",
			zap.String("shop_id", p.ShopID.String()), zap.Error(err))
		return summary, nil
	}
	return text, nil
}

func (s *service) removals(ctx context.Context, p tenant.Principal, window time.Duration) ([]*audit.Entry, error) {
	return s.audits.List(ctx, p.ShopID, audit.Filter{
		Action: audit.ActionRemove,
		Since:  s.now().Add(-window),
	})
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
