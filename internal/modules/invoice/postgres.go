package invoice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/database"
)

const invoiceColumns = `
	id, shop_id, quotation_id, customer_id, invoice_number, invoice_type, invoice_date, billing_type,
	customer_name, customer_mobile, customer_address, customer_gstin, customer_state,
	subtotal, installation_charge, transportation_charge, discount, gst_percentage, cgst, sgst, igst,
	gst_amount, grand_total, paid_amount, due_amount, payment_status, created_by, created_at, updated_at`

const paymentColumns = `
	id, invoice_id, shop_id, amount, payment_mode, payment_date, reference_number, bank_name,
	cheque_number, transaction_id, notes, created_by, created_at`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func scanInvoice(scan func(...any) error) (*Invoice, error) {
	inv := &Invoice{}
	var pct, cgst, sgst, igst decimal.NullDecimal
	err := scan(&inv.ID, &inv.ShopID, &inv.QuotationID, &inv.CustomerID, &inv.InvoiceNumber, &inv.InvoiceType,
		&inv.InvoiceDate, &inv.BillingType, &inv.CustomerName, &inv.CustomerMobile, &inv.CustomerAddress,
		&inv.CustomerGSTIN, &inv.CustomerState, &inv.Subtotal, &inv.InstallationCharge,
		&inv.TransportationCharge, &inv.Discount, &pct, &cgst, &sgst, &igst, &inv.GSTAmount, &inv.GrandTotal,
		&inv.PaidAmount, &inv.DueAmount, &inv.PaymentStatus, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.GSTPercentage = database.DecimalPtr(pct)
	inv.CGST, inv.SGST, inv.IGST = database.DecimalPtr(cgst), database.DecimalPtr(sgst), database.DecimalPtr(igst)
	return inv, nil
}

func scanPayment(scan func(...any) error) (*Payment, error) {
	p := &Payment{}
	if err := scan(&p.ID, &p.InvoiceID, &p.ShopID, &p.Amount, &p.PaymentMode, &p.PaymentDate,
		&p.ReferenceNumber, &p.BankName, &p.ChequeNumber, &p.TransactionID, &p.Notes, &p.CreatedBy,
		&p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, inv *Invoice, prefix string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		number, err := database.NextNumber(ctx, tx, "invoices", "invoice_number", inv.ShopID, prefix)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number

		err = tx.QueryRowContext(ctx, `
			INSERT INTO invoices
			  (id, shop_id, quotation_id, customer_id, invoice_number, invoice_type, invoice_date, billing_type,
			   customer_name, customer_mobile, customer_address, customer_gstin, customer_state,
			   subtotal, installation_charge, transportation_charge, discount, gst_percentage, cgst, sgst, igst,
			   gst_amount, grand_total, paid_amount, due_amount, payment_status, created_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
			RETURNING created_at, updated_at`,
			inv.ID, inv.ShopID, inv.QuotationID, inv.CustomerID, inv.InvoiceNumber, inv.InvoiceType,
			inv.InvoiceDate, inv.BillingType, inv.CustomerName, inv.CustomerMobile, inv.CustomerAddress,
			inv.CustomerGSTIN, inv.CustomerState, inv.Subtotal, inv.InstallationCharge,
			inv.TransportationCharge, inv.Discount, database.NullDecimal(inv.GSTPercentage),
			database.NullDecimal(inv.CGST), database.NullDecimal(inv.SGST), database.NullDecimal(inv.IGST),
			inv.GSTAmount, inv.GrandTotal, inv.PaidAmount, inv.DueAmount, inv.PaymentStatus, inv.CreatedBy).
			Scan(&inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return apperr.FromDB(err, "invoice")
		}

		for _, it := range inv.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO invoice_items
				  (id, invoice_id, glass_type, thickness, height, width, height_unit, width_unit, design,
				   quantity, rate_per_sqft, area, subtotal, hsn_code, description, item_order)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
				it.ID, inv.ID, it.GlassType, it.Thickness, it.Height, it.Width, it.HeightUnit, it.WidthUnit,
				it.Design, it.Quantity, it.RatePerSqft, it.Area, it.Subtotal, it.HSNCode, it.Description,
				it.ItemOrder)
			if err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND shop_id = $2`, id, shopID).Scan)
	if err != nil {
		return nil, apperr.FromDB(err, "invoice")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, glass_type, thickness, height, width, height_unit, width_unit, design, quantity,
		       rate_per_sqft, area, subtotal, hsn_code, description, item_order
		FROM invoice_items WHERE invoice_id = $1 ORDER BY item_order`, inv.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		it := &Item{}
		if err := rows.Scan(&it.ID, &it.GlassType, &it.Thickness, &it.Height, &it.Width, &it.HeightUnit,
			&it.WidthUnit, &it.Design, &it.Quantity, &it.RatePerSqft, &it.Area, &it.Subtotal, &it.HSNCode,
			&it.Description, &it.ItemOrder); err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, it)
	}
	return inv, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context, shopID uuid.UUID, status PaymentStatus) ([]*Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE shop_id = $1`
	args := []any{shopID}
	if status != "" {
		query += ` AND payment_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY invoice_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *postgresRepo) Payments(ctx context.Context, shopID, invoiceID uuid.UUID) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE invoice_id = $1 AND shop_id = $2
		ORDER BY payment_date, created_at`, invoiceID, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *postgresRepo) ApplyPayment(ctx context.Context, shopID, id uuid.UUID, fn ApplyFunc) (*Invoice, *Payment, error) {
	var (
		inv *Invoice
		pay *Payment
	)
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		inv, err = scanInvoice(tx.QueryRowContext(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND shop_id = $2 FOR UPDATE`, id, shopID).Scan)
		if err != nil {
			return apperr.FromDB(err, "invoice")
		}
		if pay, err = fn(inv); err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO payments
			  (id, invoice_id, shop_id, amount, payment_mode, payment_date, reference_number, bank_name,
			   cheque_number, transaction_id, notes, created_by)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			RETURNING created_at`,
			pay.ID, inv.ID, inv.ShopID, pay.Amount, pay.PaymentMode, pay.PaymentDate, pay.ReferenceNumber,
			pay.BankName, pay.ChequeNumber, pay.TransactionID, pay.Notes, pay.CreatedBy).Scan(&pay.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		return tx.QueryRowContext(ctx, `
			UPDATE invoices SET paid_amount = $1, due_amount = $2, payment_status = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING updated_at`,
			inv.PaidAmount, inv.DueAmount, inv.PaymentStatus, inv.ID).Scan(&inv.UpdatedAt)
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, pay, nil
}
