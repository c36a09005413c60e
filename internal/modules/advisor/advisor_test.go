package advisor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/stock"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

var (
	ctx    = context.Background()
	shopID = uuid.New()
	staff  = tenant.Principal{UserID: uuid.New(), ShopID: shopID, Username: "ramesh", Role: tenant.RoleStaff}
	fixed  = time.Date(2026, 3, 9, 11, 30, 0, 0, time.UTC)
)

type mockStocks struct {
	stock.Service
	mock.Mock
}

func (m *mockStocks) rows(args mock.Arguments) ([]*stock.Stock, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stock.Stock), args.Error(1)
}

func (m *mockStocks) LowStock(ctx context.Context, p tenant.Principal) ([]*stock.Stock, error) {
	return m.rows(m.Called(ctx, p))
}

func (m *mockStocks) ListAll(ctx context.Context, p tenant.Principal) ([]*stock.Stock, error) {
	return m.rows(m.Called(ctx, p))
}

func (m *mockStocks) Available(ctx context.Context, p tenant.Principal, glassType string) ([]*stock.Stock, error) {
	return m.rows(m.Called(ctx, p, glassType))
}

type mockAudits struct {
	audit.Service
	mock.Mock
}

func (m *mockAudits) List(ctx context.Context, shopID uuid.UUID, f audit.Filter) ([]*audit.Entry, error) {
	args := m.Called(ctx, shopID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

type fakeLLM struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeLLM) Complete(_ context.Context, _, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func newFixture(llm Completer) (Service, *mockStocks, *mockAudits) {
	stocks, audits := &mockStocks{}, &mockAudits{}
	svc := NewService(stocks, audits, llm, nil)
	svc.(*service).now = func() time.Time { return fixed }
	return svc, stocks, audits
}

func row(glassType string, stand, qty, minQty int) *stock.Stock {
	return &stock.Stock{ShopID: shopID, Glass: &catalog.Glass{Type: glassType}, StandNo: stand, Quantity: qty, MinQuantity: minQty}
}

func removal(glassType string, stand, qty int) *audit.Entry {
	return &audit.Entry{ShopID: shopID, Action: audit.ActionRemove, GlassType: glassType, StandNo: stand, Quantity: qty}
}

func since(days int) audit.Filter {
	return audit.Filter{Action: audit.ActionRemove, Since: fixed.Add(-time.Duration(days) * 24 * time.Hour)}
}

func TestAdvice_EmptyAndHelp(t *testing.T) {
	svc, _, _ := newFixture(nil)

	text, err := svc.Advice(ctx, staff, "   ")
	require.NoError(t, err)
	assert.Equal(t, EmptyQuestionText, text)

	text, err = svc.Advice(ctx, staff, "hello there")
	require.NoError(t, err)
	assert.Equal(t, HelpText, text)
}

func TestAdvice_Reorder(t *testing.T) {
	svc, stocks, _ := newFixture(nil)
	stocks.On("LowStock", ctx, staff).Return([]*stock.Stock{row("8MM", 3, 4, 5), row("5MM", 1, 2, 10)}, nil)

	text, err := svc.Advice(ctx, staff, "What should I REORDER?")
	require.NoError(t, err)
	assert.Equal(t, "📋 REORDER SUGGESTIONS (Top 5 Priority Items):\n\n"+
		"1. 5MM (Stand #1)\n   Current: 2 units | Minimum: 10 units | Gap: 8 units\n   💡 Recommended reorder: 20 units\n\n"+
		"2. 8MM (Stand #3)\n   Current: 4 units | Minimum: 5 units | Gap: 1 units\n   💡 Recommended reorder: 10 units\n\n"+
		"Total items needing reorder: 2", text)
}

func TestAdvice_SlowRoutesToReorder(t *testing.T) {
	svc, stocks, audits := newFixture(nil)
	stocks.On("LowStock", ctx, staff).Return([]*stock.Stock{}, nil)

	text, err := svc.Advice(ctx, staff, "which glass is slow")
	require.NoError(t, err)
	assert.Contains(t, text, "Great news!")
	audits.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvice_BestSellers(t *testing.T) {
	svc, _, audits := newFixture(nil)
	audits.On("List", ctx, shopID, since(30)).
		Return([]*audit.Entry{removal("5MM", 1, 3), removal("8MM", 2, 10), removal("5MM", 4, 4)}, nil)

	text, err := svc.Advice(ctx, staff, "Which glass sells most?")
	require.NoError(t, err)
	assert.Equal(t, "🏆 BEST SELLING GLASS (Last 30 Days):\n\n"+
		"1. 8MM - 10 units sold\n2. 5MM - 7 units sold\n\n"+
		"📈 Total units sold in last 30 days: 17", text)
}

func TestAdvice_BestSellersWithoutData(t *testing.T) {
	svc, _, audits := newFixture(nil)
	audits.On("List", ctx, shopID, since(30)).Return([]*audit.Entry{}, nil)

	text, err := svc.Advice(ctx, staff, "most popular")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "📊 No sales data available"))
}

func TestAdvice_DeadStock(t *testing.T) {
	svc, stocks, audits := newFixture(nil)
	audits.On("List", ctx, shopID, since(60)).Return([]*audit.Entry{removal("5MM", 1, 2)}, nil)
	stocks.On("ListAll", ctx, staff).Return([]*stock.Stock{
		row("5MM", 1, 20, 0),
		row("12MM", 2, 5, 0),
		row("12MM", 4, 15, 0),
		row("8MM", 5, 0, 0),
		row("10MM", 6, 30, 0),
	}, nil)

	text, err := svc.Advice(ctx, staff, "Which glass is dead stock?")
	require.NoError(t, err)
	assert.Equal(t, "⚠️ DEAD STOCK (No sales in last 60 days):\n\n"+
		"1. 10MM\n   Total quantity: 30 units across 1 stand(s)\n   Stands: #6\n\n"+
		"2. 12MM\n   Total quantity: 20 units across 2 stand(s)\n   Stands: #4, #2\n\n"+
		"💡 Consider running promotions or reviewing pricing for these items.", text)
}

func TestAdvice_StandActivity(t *testing.T) {
	svc, _, audits := newFixture(nil)
	add := func(stand int) *audit.Entry { return &audit.Entry{Action: audit.ActionAdd, StandNo: stand} }
	audits.On("List", ctx, shopID, audit.Filter{}).Return([]*audit.Entry{
		add(2), removal("5MM", 2, 1), removal("5MM", 2, 1), add(1), add(0),
	}, nil)

	text, err := svc.Advice(ctx, staff, "Which stand has frequent movement?")
	require.NoError(t, err)
	assert.Equal(t, "📊 MOST ACTIVE STANDS (By total operations):\n\n"+
		"1. Stand #2 - 3 operations\n2. Stand #1 - 1 operations\n\n"+
		"📈 Stand #2 breakdown:\n   ADD: 1\n   REMOVE: 2\n", text)
}

func TestAdvice_PropagatesErrors(t *testing.T) {
	svc, stocks, _ := newFixture(nil)
	stocks.On("LowStock", ctx, staff).Return(nil, errors.New("db down"))

	_, err := svc.Advice(ctx, staff, "restock")
	assert.EqualError(t, err, "db down")
}

func TestAsk(t *testing.T) {
	svc, stocks, audits := newFixture(nil)
	sized := row("5MM", 1, 10, 0)
	sized.Height, sized.Width = "6", "4"
	stocks.On("Available", ctx, staff, "5mm").Return([]*stock.Stock{sized, row("5MM", 2, 5, 0)}, nil)
	stocks.On("LowStock", ctx, staff).Return([]*stock.Stock{row("5MM", 1, 2, 10)}, nil)
	stocks.On("ListAll", ctx, staff).Return([]*stock.Stock{row("5MM", 1, 20, 0)}, nil)
	audits.On("List", ctx, shopID, since(30)).Return([]*audit.Entry{removal("5MM", 1, 45)}, nil)

	text, err := svc.Ask(ctx, staff, AskRequest{Action: "available", GlassType: "5mm"})
	require.NoError(t, err)
	assert.Equal(t, "📦 AVAILABLE STOCK: 5MM\n\n• Stand #1 (6 x 4): 10 units\n• Stand #2: 5 units\n\nTotal available: 15 units", text)

	text, err = svc.Ask(ctx, staff, AskRequest{Action: AskLowStock})
	require.NoError(t, err)
	assert.Contains(t, text, "LOW STOCK ALERT")

	text, err = svc.Ask(ctx, staff, AskRequest{Action: AskPredict})
	require.NoError(t, err)
	assert.Equal(t, "🔮 DEMAND FORECAST (Next 30 Days):\n\n"+
		"1. 5MM - about 1.5 units/day, expect ~45 units\n   In stock: 20 units | ⚠️ short by 25", text)

	text, err = svc.Ask(ctx, staff, AskRequest{Action: "DANCE"})
	require.NoError(t, err)
	assert.Equal(t, InvalidOptionText, text)
}

func TestExplain(t *testing.T) {
	low := []*stock.Stock{row("5MM", 1, 2, 10)}

	t.Run("without llm", func(t *testing.T) {
		svc, stocks, _ := newFixture(nil)
		stocks.On("LowStock", ctx, staff).Return(low, nil)

		text, err := svc.Explain(ctx, staff)
		require.NoError(t, err)
		assert.Equal(t, stock.LowStockText(low), text)
	})

	t.Run("rephrased", func(t *testing.T) {
		llm := &fakeLLM{reply: "Stand 1 is nearly out of 5MM."}
		svc, stocks, _ := newFixture(llm)
		stocks.On("LowStock", ctx, staff).Return(low, nil)

		text, err := svc.Explain(ctx, staff)
		require.NoError(t, err)
		assert.Equal(t, "Stand 1 is nearly out of 5MM.", text)
		assert.Equal(t, stock.LowStockText(low), llm.prompt)
	})

	t.Run("llm failure falls back", func(t *testing.T) {
		llm := &fakeLLM{err: errors.New("timeout")}
		svc, stocks, _ := newFixture(llm)
		stocks.On("LowStock", ctx, staff).Return(low, nil)

		text, err := svc.Explain(ctx, staff)
		require.NoError(t, err)
		assert.Equal(t, stock.LowStockText(low), text)
	})

	t.Run("nothing low skips llm", func(t *testing.T) {
		llm := &fakeLLM{reply: "unused"}
		svc, stocks, _ := newFixture(llm)
		stocks.On("LowStock", ctx, staff).Return([]*stock.Stock{}, nil)

		text, err := svc.Explain(ctx, staff)
		require.NoError(t, err)
		assert.Equal(t, stock.NoLowStockText, text)
		assert.Zero(t, llm.calls)
	})
}

func serve(svc Service, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h := NewHandler(svc, nil)
	h.RegisterPublicRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(tenant.WithPrincipal(req.Context(), staff)))
			})
		})
		h.RegisterRoutes(r)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	svc, stocks, _ := newFixture(nil)
	stocks.On("LowStock", mock.Anything, staff).Return([]*stock.Stock{}, nil)

	rec := serve(svc, httptest.NewRequest(http.MethodGet, "/ai/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pingText, rec.Body.String())

	rec = serve(svc, httptest.NewRequest(http.MethodGet, "/ai/stock/advice?question=what+should+I+reorder", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Great news!")

	rec = serve(svc, httptest.NewRequest(http.MethodPost, "/ai/ask", strings.NewReader(`{"action":"nope"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, InvalidOptionText, rec.Body.String())

	rec = serve(svc, httptest.NewRequest(http.MethodPost, "/ai/ask", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(svc, httptest.NewRequest(http.MethodGet, "/stock/ai/explain", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stock.NoLowStockText, rec.Body.String())
}
