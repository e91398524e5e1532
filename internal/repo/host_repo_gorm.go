package repo

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

type HostRepo struct{ db *gorm.DB }

func NewHostRepo(db *gorm.DB) *HostRepo { return &HostRepo{db: db} }

// Create relies on the unique index on user_id, so two racing promotions of
// one user cannot both land.
func (r *HostRepo) Create(ctx context.Context, h *domain.Host) error {
	err := r.db.WithContext(ctx).Omit("User").Create(h).Error
	if isDupKey(err) {
		return domain.DuplicateHost(h.UserID)
	}
	return wrap("create host", err)
}

func (r *HostRepo) FindAll(ctx context.Context) ([]domain.Host, error) {
	return find[domain.Host]("find hosts", r.db.WithContext(ctx).Preload("User").Order("id"))
}

func (r *HostRepo) FindByID(ctx context.Context, id int64) (*domain.Host, error) {
	return first[domain.Host]("find host", r.db.WithContext(ctx).Preload("User"), "id = ?", id)
}

func (r *HostRepo) FindByUserID(ctx context.Context, userID int64) (*domain.Host, error) {
	return first[domain.Host]("find host by user", r.db.WithContext(ctx).Preload("User"), "user_id = ?", userID)
}

func (r *HostRepo) Update(ctx context.Context, h *domain.Host) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.Host{}).Where("id = ?", h.ID).Update("user_id", h.UserID)
	if isDupKey(res.Error) {
		return false, domain.DuplicateHost(h.UserID)
	}
	return matched[domain.Host]("update host", db, res, h.ID)
}

func (r *HostRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return deleteByID[domain.Host]("delete host", r.db.WithContext(ctx), id)
}

func (r *HostRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll[domain.Host]("delete hosts", r.db.WithContext(ctx))
}

func (r *HostRepo) RankByReservations(ctx context.Context, p domain.Period) ([]domain.HostRanking, error) {
	q := r.db.WithContext(ctx).Table("hosts AS h").
		Select("h.id AS host_id, u.name, u.surname, COUNT(r.id) AS reservations").
		Joins("JOIN users u ON u.id = h.user_id").
		Joins("JOIN accommodations a ON a.host_id = h.id").
		Joins("JOIN reservations r ON r.accommodation_id = a.id")
	q = inPeriod(q, "r.start_date", p).
		Group("h.id, u.name, u.surname").
		Order("reservations DESC, h.id ASC")
	var out []domain.HostRanking
	if err := q.Scan(&out).Error; err != nil {
		return nil, wrap("rank hosts", err)
	}
	return out, nil
}
