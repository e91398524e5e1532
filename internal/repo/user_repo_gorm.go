package repo

import (
	"context"

	"gorm.io/gorm"

	"booking-platform/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isDupKey(err) {
		return domain.DuplicateUser(u.Email)
	}
	return wrap("create user", err)
}

func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	return find[domain.User]("find users", r.db.WithContext(ctx).Order("id"))
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return first[domain.User]("find user", r.db.WithContext(ctx), "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return first[domain.User]("find user by email", r.db.WithContext(ctx), "email = ?", email)
}

func (r *UserRepo) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return first[domain.User]("find user by name", r.db.WithContext(ctx).Order("id"), "name = ?", name)
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) (bool, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&domain.User{}).Where("id = ?", u.ID).
		Select("name", "surname", "email", "address").
		Updates(u)
	if isDupKey(res.Error) {
		return false, domain.DuplicateUser(u.Email)
	}
	return matched[domain.User]("update user", db, res, u.ID)
}

func (r *UserRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return deleteByID[domain.User]("delete user", r.db.WithContext(ctx), id)
}

func (r *UserRepo) DeleteByName(ctx context.Context, name string) (bool, error) {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&domain.User{})
	if res.Error != nil {
		return false, wrap("delete user by name", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll[domain.User]("delete users", r.db.WithContext(ctx))
}

func (r *UserRepo) TopTravelers(ctx context.Context, p domain.Period, limit int) ([]domain.Traveler, error) {
	db := r.db.WithContext(ctx)
	nights := "SUM(r.end_date - r.start_date)"
	if db.Dialector.Name() == "mysql" {
		nights = "SUM(DATEDIFF(r.end_date, r.start_date))"
	}
	q := db.Table("reservations AS r").
		Select("u.id AS user_id, u.name, u.surname, " + nights + " AS nights").
		Joins("JOIN users u ON u.id = r.user_id")
	q = inPeriod(q, "r.start_date", p).
		Group("u.id, u.name, u.surname").
		Order("nights DESC, u.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Traveler
	if err := q.Scan(&out).Error; err != nil {
		return nil, wrap("top travelers", err)
	}
	return out, nil
}
