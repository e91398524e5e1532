package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-platform/internal/domain"
)

type AccommodationRepo struct{ db *gorm.DB }

func NewAccommodationRepo(db *gorm.DB) *AccommodationRepo { return &AccommodationRepo{db: db} }

func (r *AccommodationRepo) Create(ctx context.Context, a *domain.Accommodation) error {
	return wrap("create accommodation", r.db.WithContext(ctx).Create(a).Error)
}

func (r *AccommodationRepo) FindAll(ctx context.Context) ([]domain.Accommodation, error) {
	return find[domain.Accommodation]("find accommodations", r.db.WithContext(ctx).Order("id"))
}

func (r *AccommodationRepo) FindByID(ctx context.Context, id int64) (*domain.Accommodation, error) {
	return first[domain.Accommodation]("find accommodation", r.db.WithContext(ctx), "id = ?", id)
}

func (r *AccommodationRepo) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Accommodation, error) {
	q := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return first[domain.Accommodation]("lock accommodation", q, "id = ?", id)
}

func (r *AccommodationRepo) FindByName(ctx context.Context, name string) ([]domain.Accommodation, error) {
	return find[domain.Accommodation]("find accommodations by name",
		r.db.WithContext(ctx).Where("name = ?", name).Order("id"))
}

func (r *AccommodationRepo) FindByRoomCount(ctx context.Context, n int) ([]domain.Accommodation, error) {
	return find[domain.Accommodation]("find accommodations by rooms",
		r.db.WithContext(ctx).Where("room_count = ?", n).Order("id"))
}

func (r *AccommodationRepo) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Accommodation, error) {
	return find[domain.Accommodation]("find accommodations by availability",
		r.db.WithContext(ctx).
			Where("availability_start <= ? AND availability_end >= ?", domain.Day(end), domain.Day(start)).
			Order("id"))
}

func (r *AccommodationRepo) FindByHost(ctx context.Context, hostID int64) ([]domain.Accommodation, error) {
	return find[domain.Accommodation]("find accommodations by host",
		r.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id"))
}

func (r *AccommodationRepo) MostPopular(ctx context.Context, p domain.Period) (*domain.Popularity, error) {
	db := r.db.WithContext(ctx)
	var top struct {
		ID           int64
		Reservations int64
	}
	// the join drops reservations whose listing has been deleted
	q := db.Table("reservations AS r").
		Select("a.id AS id, COUNT(r.id) AS reservations").
		Joins("JOIN accommodations a ON a.id = r.accommodation_id")
	q = inPeriod(q, "r.start_date", p).
		Group("a.id").
		Order("reservations DESC, a.id ASC").
		Limit(1)
	res := q.Scan(&top)
	if res.Error != nil {
		return nil, wrap("most popular accommodation", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	a, err := r.FindByID(ctx, top.ID)
	if err != nil || a == nil {
		return nil, err
	}
	return &domain.Popularity{Accommodation: *a, Reservations: top.Reservations}, nil
}

func (r *AccommodationRepo) AverageBedCount(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&domain.Accommodation{}).
		Select("COALESCE(AVG(bed_count), 0)").
		Scan(&avg).Error
	return avg, wrap("average bed count", err)
}

func (r *AccommodationRepo) Update(ctx context.Context, a *domain.Accommodation) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Accommodation{}).Where("id = ?", a.ID).
		Select("*").Omit("id").
		Updates(a)
	return matched[domain.Accommodation]("update accommodation", db, res, a.ID)
}

func (r *AccommodationRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return deleteByID[domain.Accommodation]("delete accommodation", r.db.WithContext(ctx), id)
}

func (r *AccommodationRepo) DeleteByName(ctx context.Context, name string) (int64, error) {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Accommodation{})
	return res.RowsAffected, wrap("delete accommodations by name", res.Error)
}

func (r *AccommodationRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll[domain.Accommodation]("delete accommodations", r.db.WithContext(ctx))
}
