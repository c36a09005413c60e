package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MonthlyPrefix formats a per-month document prefix such as "Q-2026-03-".
func MonthlyPrefix(kind string, t time.Time) string {
	return fmt.Sprintf("%s-%s-", kind, t.Format("2006-01"))
}

// NextNumber returns prefix followed by the next four-digit sequence among the
// shop's rows of table whose column starts with prefix. It must run inside a
// transaction: the advisory lock it takes is held until commit, so two callers
// for the same shop and prefix never read the same maximum.
func NextNumber(ctx context.Context, tx DBTX, table, column string, shopID uuid.UUID, prefix string) (string, error) {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`,
		table+":"+shopID.String()+":"+prefix); err != nil {
		return "", fmt.Errorf("lock %s sequence: %w", table, err)
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(%[2]s FROM '[0-9]+$') AS INTEGER)), 0)
		FROM %[1]s WHERE shop_id = $1 AND %[2]s LIKE $2`, table, column)
	var last int
	if err := tx.QueryRowContext(ctx, query, shopID, prefix+"%").Scan(&last); err != nil {
		return "", fmt.Errorf("read %s sequence: %w", table, err)
	}
	return fmt.Sprintf("%s%04d", prefix, last+1), nil
}
