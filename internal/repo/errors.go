package repo

import (
	"errors"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

// isDupKey relies on the dialector translating unique violations, which
// database.NewGorm turns on.
func isDupKey(err error) bool { return errors.Is(err, gorm.ErrDuplicatedKey) }

func notFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// wrap leaves domain errors alone and classifies anything else as storage.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Storage(op, err)
}

// first runs q.First and maps ErrRecordNotFound to (nil, nil).
func first[T any](op string, q *gorm.DB, conds ...any) (*T, error) {
	var v T
	err := q.First(&v, conds...).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return &v, nil
}

func find[T any](op string, q *gorm.DB) ([]T, error) {
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}

// matched reports whether an UPDATE by primary key hit a row. MySQL counts
// changed rows only, so a zero count falls back to an existence check.
func matched[T any](op string, db *gorm.DB, res *gorm.DB, id int64) (bool, error) {
	if res.Error != nil {
		return false, wrap(op, res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	var n int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, wrap(op, err)
	}
	return n > 0, nil
}

func deleteByID[T any](op string, db *gorm.DB, id int64) (bool, error) {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return false, wrap(op, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func deleteAll[T any](op string, db *gorm.DB) (int64, error) {
	res := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T))
	if res.Error != nil {
		return 0, wrap(op, res.Error)
	}
	return res.RowsAffected, nil
}

// inPeriod restricts col to the days of p.
func inPeriod(q *gorm.DB, col string, p domain.Period) *gorm.DB {
	if !p.From.IsZero() {
		q = q.Where(col+" >= ?", domain.Day(p.From))
	}
	if !p.To.IsZero() {
		q = q.Where(col+" <= ?", domain.Day(p.To))
	}
	return q
}
