package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	return wrap("create reservation", r.db.WithContext(ctx).Create(res).Error)
}

func (r *ReservationRepo) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	return find[domain.Reservation]("find reservations", r.db.WithContext(ctx).Order("id"))
}

func (r *ReservationRepo) FindByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return first[domain.Reservation]("find reservation", r.db.WithContext(ctx), "id = ?", id)
}

func (r *ReservationRepo) FindByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return find[domain.Reservation]("find reservations by user",
		r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id"))
}

func (r *ReservationRepo) FindLatestByUser(ctx context.Context, userID int64) (*domain.Reservation, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	var out domain.Reservation
	// Take, not First: First would append ORDER BY id ASC.
	err := q.Take(&out).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("find latest reservation", err)
	}
	return &out, nil
}

func (r *ReservationRepo) FindOverlapping(ctx context.Context, accommodationID int64, start, end time.Time) ([]domain.Reservation, error) {
	return find[domain.Reservation]("find overlapping reservations",
		r.db.WithContext(ctx).
			Where("accommodation_id = ? AND start_date < ? AND end_date > ?", accommodationID, domain.Day(end), domain.Day(start)).
			Order("id"))
}

func (r *ReservationRepo) Update(ctx context.Context, res *domain.Reservation) (bool, error) {
	db := r.db.WithContext(ctx)
	out := db.Model(&domain.Reservation{}).Where("id = ?", res.ID).
		Select("start_date", "end_date", "user_id", "accommodation_id").
		Updates(res)
	return matched[domain.Reservation]("update reservation", db, out, res.ID)
}

func (r *ReservationRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return deleteByID[domain.Reservation]("delete reservation", r.db.WithContext(ctx), id)
}

func (r *ReservationRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll[domain.Reservation]("delete reservations", r.db.WithContext(ctx))
}
