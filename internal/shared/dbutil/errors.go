package dbutil

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// UniqueViolation mengembalikan nama constraint kalau err adalah pelanggaran
// unique. Pesan error juga dicek karena sebagian driver membungkus PgError.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == uniqueViolation
	}
	msg := err.Error()
	if !strings.Contains(strings.ToLower(msg), "duplicate key value") {
		return "", false
	}
	if i := strings.Index(msg, `constraint "`); i >= 0 {
		rest := msg[i+len(`constraint "`):]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			return rest[:j], true
		}
	}
	return "", true
}

// MapError menerjemahkan error repository ke error domain:
// record not found → notFound, unique violation → unique[constraint].
// Error lain dikembalikan apa adanya.
func MapError(err, notFound error, unique map[string]error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	if name, ok := UniqueViolation(err); ok {
		if mapped, found := unique[name]; found {
			return mapped
		}
	}
	return err
}
