package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Code prefixes. Products use "P" (physical goods) or "J" (services); sales
// use a date-scoped "TRX-YYYYMMDD-" prefix so the counter restarts daily.
const (
	PrefixPhysical = "P"
	PrefixService  = "J"

	codeWidth = 3
)

// SalePrefix returns the date-scoped prefix for sale codes.
func SalePrefix(t time.Time) string {
	return "TRX-" + t.Format("20060102") + "-"
}

// FormatCode zero-pads the numeric suffix to three digits; larger counters
// simply widen (P999 → P1000).
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, codeWidth, n)
}

// NextCode derives the next sequential code for prefix by scanning the
// existing rows of table.column inside the caller's transaction. The max is
// taken over the numeric cast of the suffix, not lexically, so "10" sorts
// after "9". The scan only bounds the duplicate race; the unique index on
// the code column is the correctness backstop, and callers surface a
// conflict on violation rather than retrying silently. SUBSTR is used over
// SUBSTRING(x FROM n) so the same statement runs on both Postgres and the
// SQLite used in tests.
func NextCode(tx *gorm.DB, table, column, prefix string) (string, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(CAST(SUBSTR(%s, %d) AS INTEGER)), 0) FROM %s WHERE %s LIKE ?",
		column, len(prefix)+1, table, column,
	)
	var max int
	if err := tx.Raw(query, prefix+"%").Scan(&max).Error; err != nil {
		return "", err
	}
	return FormatCode(prefix, max+1), nil
}
