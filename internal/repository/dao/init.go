package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&Brand{},
		&Category{},
		&ScooterModel{},
		&Part{},
		&PartCompatibility{},
		&Tutorial{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&GarageItem{},
		&SearchEntry{},
	)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint. The sqlite driver used in tests does
// not produce pgconn errors, so its message is matched as a fallback.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, constraint)
	}

	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique")
}
