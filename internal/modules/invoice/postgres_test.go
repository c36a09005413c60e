package invoice

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

var invoiceCols = []string{
	"id", "shop_id", "quotation_id", "customer_id", "invoice_number", "invoice_type", "invoice_date",
	"billing_type", "customer_name", "customer_mobile", "customer_address", "customer_gstin", "customer_state",
	"subtotal", "installation_charge", "transportation_charge", "discount", "gst_percentage", "cgst", "sgst",
	"igst", "gst_amount", "grand_total", "paid_amount", "due_amount", "payment_status", "created_by",
	"created_at", "updated_at",
}

func TestPostgres_ApplyPayment(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`FROM invoices WHERE id = \$1 AND shop_id = \$2 FOR UPDATE`).
		WithArgs(id, shopID).
		WillReturnRows(sqlmock.NewRows(invoiceCols).AddRow(
			id.String(), shopID.String(), uuid.NewString(), uuid.NewString(), "INV-2026-03-0001", "FINAL", fixed,
			"NON_GST", "Ravi", "", "", "", "", "1000.00", "0", "0", "0", nil, nil, nil,
			nil, "0", "1000.00", "0", "1000.00", "DUE", "ramesh", fixed, fixed))
	sqlMock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(fixed))
	sqlMock.ExpectQuery(`UPDATE invoices SET paid_amount = \$1, due_amount = \$2, payment_status = \$3`).
		WithArgs(d("400"), d("600"), PaymentPartial, id).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(fixed))
	sqlMock.ExpectCommit()

	inv, pay, err := NewPostgresRepository(db).ApplyPayment(ctx, shopID, id, func(inv *Invoice) (*Payment, error) {
		assert.Nil(t, inv.GSTPercentage)
		inv.PaidAmount, inv.DueAmount, inv.PaymentStatus = d("400"), d("600"), PaymentPartial
		return &Payment{ID: uuid.New(), Amount: d("400"), PaymentMode: ModeCash, PaymentDate: fixed, CreatedBy: "ramesh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentPartial, inv.PaymentStatus)
	assert.Equal(t, fixed, pay.CreatedAt)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgres_ApplyPaymentRollsBack(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`FOR UPDATE`).WillReturnRows(sqlmock.NewRows(invoiceCols))
	sqlMock.ExpectRollback()

	_, _, err = NewPostgresRepository(db).ApplyPayment(ctx, shopID, uuid.New(), func(*Invoice) (*Payment, error) {
		t.Fatal("callback must not run for a missing invoice")
		return nil, nil
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgres_CreateUniqueTypeViolation(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inv := &Invoice{ID: uuid.New(), ShopID: shopID, InvoiceType: TypeFinal}
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery(`FROM invoices WHERE shop_id = \$1 AND invoice_number LIKE \$2`).
		WithArgs(shopID, "INV-2026-03-%").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(2))
	sqlMock.ExpectQuery(`INSERT INTO invoices`).WillReturnError(&pq.Error{Code: "23505"})
	sqlMock.ExpectRollback()

	err = NewPostgresRepository(db).Create(ctx, inv, "INV-2026-03-")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "INV-2026-03-0003", inv.InvoiceNumber)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestHandler_ConvertUnconfirmed(t *testing.T) {
	svc, _, quotations := newTestService()
	q := confirmedQuotation()
	q.Status = "DRAFT"
	quotations.On("GetByID", mock.Anything, shopID, q.ID).Return(q, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(tenant.WithPrincipal(req.Context(), staff)))
		})
	})
	NewHandler(svc, nil).RegisterRoutes(r)

	body := `{"quotationId":"` + q.ID.String() + `","invoiceType":"FINAL"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "only confirmed quotations can be invoiced")
}
