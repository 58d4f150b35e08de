package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withRowLock applies SELECT ... FOR UPDATE on engines that support it.
// SQLite (used by the tests) has a single writer and rejects the clause,
// so it relies on its own serialization there.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
