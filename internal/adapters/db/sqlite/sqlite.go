// Package sqlite implements the repository ports over an embedded SQLite
// store. One *gorm.DB handle is opened per process and shared by reference
// across all repositories.
package sqlite

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/databridge-io/databridge/internal/domain"
)

// Open opens (creating if needed) the database at path. WAL mode allows
// concurrent readers while a writer holds the lock; busy_timeout covers the
// remaining write contention.
func Open(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=synchronous(NORMAL)"
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dsn,
	}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// translateErr maps the store's record-not-found signal onto the domain
// sentinel so callers never depend on gorm.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func pageOf[T any](content []T, page int, total int64) domain.Page[T] {
	totalPages := (int(total) + domain.PageSize - 1) / domain.PageSize
	return domain.Page[T]{
		Content:       content,
		Size:          domain.PageSize,
		Number:        page,
		TotalElements: int(total),
		TotalPages:    totalPages,
	}
}
