package alert

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/catalog"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/shop"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/stock"
)

var ctx = context.Background()

type fakeShops struct {
	shops []*shop.Shop
	err   error
}

func (f *fakeShops) ListShops(context.Context) ([]*shop.Shop, error) { return f.shops, f.err }

type fakeStocks map[uuid.UUID][]*stock.Stock

func (f fakeStocks) LowStockForShop(_ context.Context, shopID uuid.UUID) ([]*stock.Stock, error) {
	rows, ok := f[shopID]
	if !ok {
		return nil, errors.New("boom")
	}
	return rows, nil
}

type recorder struct{ digests []Digest }

func (r *recorder) Notify(_ context.Context, d Digest) error {
	r.digests = append(r.digests, d)
	return nil
}

func low(glassType string, stand, qty, minQty int) *stock.Stock {
	return &stock.Stock{Glass: &catalog.Glass{Type: glassType}, StandNo: stand, Quantity: qty, MinQuantity: minQty}
}

func TestRun_SendsOnlyShopsWithLowStock(t *testing.T) {
	lowShop := &shop.Shop{ID: uuid.New(), Name: "Sai Glass"}
	okShop := &shop.Shop{ID: uuid.New(), Name: "Shree Glass"}
	brokenShop := &shop.Shop{ID: uuid.New(), Name: "Broken"}
	rows := []*stock.Stock{low("5MM", 1, 2, 10)}

	notifier := &recorder{}
	s := NewScheduler("0 9 * * *",
		&fakeShops{shops: []*shop.Shop{lowShop, okShop, brokenShop}},
		fakeStocks{lowShop.ID: rows, okShop.ID: {}},
		notifier, nil)

	sent, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notifier.digests, 1)
	assert.Equal(t, Digest{ShopID: lowShop.ID, ShopName: "Sai Glass", Text: stock.LowStockText(rows)}, notifier.digests[0])
}

func TestRun_ListShopsFails(t *testing.T) {
	s := NewScheduler("0 9 * * *", &fakeShops{err: errors.New("db down")}, fakeStocks{}, &recorder{}, nil)
	_, err := s.Run(ctx)
	assert.ErrorContains(t, err, "db down")
}

func TestStart_RejectsBadCron(t *testing.T) {
	s := NewScheduler("every morning", &fakeShops{}, fakeStocks{}, &recorder{}, nil)
	assert.Error(t, s.Start())

	s = NewScheduler("0 9 * * *", &fakeShops{}, fakeStocks{}, &recorder{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestWebhookNotifier(t *testing.T) {
	var got Digest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := Digest{ShopID: uuid.New(), ShopName: "Sai Glass", Text: "🚨 LOW STOCK ALERT"}
	require.NoError(t, NewWebhookNotifier(srv.URL).Notify(ctx, d))
	assert.Equal(t, d, got)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL).Notify(ctx, Digest{ShopID: uuid.New()})
	assert.ErrorContains(t, err, "502")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(nil).Notify(ctx, Digest{ShopID: uuid.New(), Text: "x"}))
}
