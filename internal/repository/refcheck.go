package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reference names a (table, column) pair to probe before a hard delete. The
// list is data, not procedural code: callers declare what may reference the
// entity and run the whole probe inside the same transaction as the delete
// decision.
type Reference struct {
	Table  string
	Column string
}

// UserReferences lists every table that can point at a user. A hit means the
// account must be soft-deactivated instead of deleted.
var UserReferences = []Reference{
	{Table: "sales", Column: "user_id"},
	{Table: "stock_movements", Column: "user_id"},
	{Table: "expenses", Column: "user_id"},
	{Table: "debt_payments", Column: "user_id"},
	{Table: "book_closings", Column: "closed_by_id"},
}

// ProductReferences gates hard deletion of catalog entries.
var ProductReferences = []Reference{
	{Table: "sale_items", Column: "product_id"},
	{Table: "stock_movements", Column: "product_id"},
}

// AnyReference reports whether any of the given (table, column) pairs holds a
// row pointing at id. Stops at the first hit.
func AnyReference(tx *gorm.DB, refs []Reference, id uuid.UUID) (bool, error) {
	for _, ref := range refs {
		var exists bool
		query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)", ref.Table, ref.Column)
		if err := tx.Raw(query, id).Scan(&exists).Error; err != nil {
			return false, err
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}
