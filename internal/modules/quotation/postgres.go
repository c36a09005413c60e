package quotation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
)

const quotationColumns = `
	id, shop_id, customer_id, quotation_number, version, billing_type, status,
	customer_name, customer_mobile, customer_address, customer_gstin, customer_state,
	quotation_date, valid_until, subtotal, installation_charge, transportation_charge,
	transportation_required, discount, gst_percentage, cgst, sgst, igst, gst_amount, grand_total,
	polish, confirmed_at, confirmed_by, rejection_reason, created_by, created_at, updated_at`

const itemColumns = `
	id, glass_type, thickness, height, width, height_unit, width_unit, design, quantity,
	rate_per_sqft, area, subtotal, hsn_code, description, item_order`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func scanQuotation(scan func(...any) error) (*Quotation, error) {
	q := &Quotation{}
	var (
		validUntil, confirmedAt     sql.NullTime
		pct, cgst, sgst, igst       decimal.NullDecimal
		confirmedBy, rejectedReason sql.NullString
	)
	err := scan(&q.ID, &q.ShopID, &q.CustomerID, &q.QuotationNumber, &q.Version, &q.BillingType, &q.Status,
		&q.CustomerName, &q.CustomerMobile, &q.CustomerAddress, &q.CustomerGSTIN, &q.CustomerState,
		&q.QuotationDate, &validUntil, &q.Subtotal, &q.InstallationCharge, &q.TransportationCharge,
		&q.TransportationRequired, &q.Discount, &pct, &cgst, &sgst, &igst, &q.GSTAmount, &q.GrandTotal,
		&q.Polish, &confirmedAt, &confirmedBy, &rejectedReason, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.ValidUntil = database.TimePtr(validUntil)
	q.ConfirmedAt = database.TimePtr(confirmedAt)
	q.GSTPercentage = database.DecimalPtr(pct)
	q.CGST, q.SGST, q.IGST = database.DecimalPtr(cgst), database.DecimalPtr(sgst), database.DecimalPtr(igst)
	q.ConfirmedBy, q.RejectionReason = confirmedBy.String, rejectedReason.String
	return q, nil
}

func scanItem(scan func(...any) error) (*Item, error) {
	it := &Item{}
	if err := scan(&it.ID, &it.GlassType, &it.Thickness, &it.Height, &it.Width, &it.HeightUnit, &it.WidthUnit,
		&it.Design, &it.Quantity, &it.RatePerSqft, &it.Area, &it.Subtotal, &it.HSNCode, &it.Description,
		&it.ItemOrder); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *postgresRepo) Create(ctx context.Context, q *Quotation, prefix string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		number, err := database.NextNumber(ctx, tx, "quotations", "quotation_number", q.ShopID, prefix)
		if err != nil {
			return err
		}
		q.QuotationNumber = number

		err = tx.QueryRowContext(ctx, `
			INSERT INTO quotations
			  (id, shop_id, customer_id, quotation_number, version, billing_type, status,
			   customer_name, customer_mobile, customer_address, customer_gstin, customer_state,
			   quotation_date, valid_until, subtotal, installation_charge, transportation_charge,
			   transportation_required, discount, gst_percentage, cgst, sgst, igst, gst_amount, grand_total,
			   polish, created_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
			RETURNING created_at, updated_at`,
			q.ID, q.ShopID, q.CustomerID, q.QuotationNumber, q.Version, q.BillingType, q.Status,
			q.CustomerName, q.CustomerMobile, q.CustomerAddress, q.CustomerGSTIN, q.CustomerState,
			q.QuotationDate, database.NullTime(q.ValidUntil), q.Subtotal, q.InstallationCharge, q.TransportationCharge,
			q.TransportationRequired, q.Discount, database.NullDecimal(q.GSTPercentage),
			database.NullDecimal(q.CGST), database.NullDecimal(q.SGST), database.NullDecimal(q.IGST),
			q.GSTAmount, q.GrandTotal, q.Polish, q.CreatedBy).
			Scan(&q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return apperr.FromDB(err, "quotation")
		}
		return insertItems(ctx, tx, q)
	})
}

func insertItems(ctx context.Context, tx *sql.Tx, q *Quotation) error {
	for _, it := range q.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quotation_items
			  (id, quotation_id, glass_type, thickness, height, width, height_unit, width_unit, design,
			   quantity, rate_per_sqft, area, subtotal, hsn_code, description, item_order)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			it.ID, q.ID, it.GlassType, it.Thickness, it.Height, it.Width, it.HeightUnit, it.WidthUnit,
			it.Design, it.Quantity, it.RatePerSqft, it.Area, it.Subtotal, it.HSNCode, it.Description, it.ItemOrder)
		if err != nil {
			return fmt.Errorf("insert quotation item: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*Quotation, error) {
	q, err := scanQuotation(r.db.QueryRowContext(ctx,
		`SELECT `+quotationColumns+` FROM quotations WHERE id = $1 AND shop_id = $2`, id, shopID).Scan)
	if err != nil {
		return nil, apperr.FromDB(err, "quotation")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM quotation_items WHERE quotation_id = $1 ORDER BY item_order`, q.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		q.Items = append(q.Items, it)
	}
	return q, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context, shopID uuid.UUID, status Status) ([]*Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE shop_id = $1`
	args := []any{shopID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotations := []*Quotation{}
	for rows.Next() {
		q, err := scanQuotation(rows.Scan)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, q)
	}
	return quotations, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, q *Quotation) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE quotations
		SET status = $1, confirmed_at = $2, confirmed_by = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND shop_id = $6
		RETURNING updated_at`,
		q.Status, database.NullTime(q.ConfirmedAt), database.NullString(q.ConfirmedBy),
		database.NullString(q.RejectionReason), q.ID, q.ShopID).Scan(&q.UpdatedAt)
	return apperr.FromDB(err, "quotation")
}

func (r *postgresRepo) Replace(ctx context.Context, q *Quotation) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			UPDATE quotations
			SET version = $1, status = $2, customer_state = $3, quotation_date = $4, valid_until = $5,
			    subtotal = $6, installation_charge = $7, transportation_charge = $8,
			    transportation_required = $9, discount = $10, gst_percentage = $11, cgst = $12, sgst = $13,
			    igst = $14, gst_amount = $15, grand_total = $16, polish = $17, rejection_reason = NULL,
			    updated_at = NOW()
			WHERE id = $18 AND shop_id = $19
			RETURNING updated_at`,
			q.Version, q.Status, q.CustomerState, q.QuotationDate, database.NullTime(q.ValidUntil),
			q.Subtotal, q.InstallationCharge, q.TransportationCharge,
			q.TransportationRequired, q.Discount, database.NullDecimal(q.GSTPercentage),
			database.NullDecimal(q.CGST), database.NullDecimal(q.SGST), database.NullDecimal(q.IGST),
			q.GSTAmount, q.GrandTotal, q.Polish, q.ID, q.ShopID).Scan(&q.UpdatedAt)
		if err != nil {
			return apperr.FromDB(err, "quotation")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, q.ID); err != nil {
			return fmt.Errorf("delete quotation items: %w", err)
		}
		return insertItems(ctx, tx, q)
	})
}

func (r *postgresRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotations WHERE id = $1 AND shop_id = $2`, id, shopID)
	if err != nil {
		return apperr.FromDB(err, "quotation")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("quotation not found")
	}
	return nil
}
