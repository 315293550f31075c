package pkg

import (
	"fmt"

	"gorm.io/gorm"
)

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics. The panic is re-raised after rollback.
//
// Used by repositories whose operations touch more than one table, e.g.
// replacing a product's size rows or recording a coupon redemption together
// with its usage counter.
func WithTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}
	committed = true
	return nil
}
