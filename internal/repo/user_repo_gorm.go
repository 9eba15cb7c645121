package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"blood-donor-service/internal/domain"
	"blood-donor-service/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	*u = m.ToDomain()
	return nil
}

func (r *UserRepo) FindAvailableDonors(ctx context.Context, bloodType string) ([]domain.User, error) {
	var ms []user.UserModel
	err := r.db.WithContext(ctx).
		Where("role = ? AND available = ? AND blood_type = ?", domain.RoleDonor, true, bloodType).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("find donors: %w", err)
	}
	return user.ToDomainList(ms), nil
}

func (r *UserRepo) FindByRole(ctx context.Context, role string) ([]domain.User, error) {
	var ms []user.UserModel
	if err := r.db.WithContext(ctx).Where("role = ?", role).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find users by role: %w", err)
	}
	return user.ToDomainList(ms), nil
}

func (r *UserRepo) List(ctx context.Context, f domain.UserFilter, offset, limit int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&user.UserModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.BloodType != "" {
		q = q.Where("blood_type = ?", f.BloodType)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR contact_info LIKE ?", like, like)
	}

	q = q.Session(&gorm.Session{}) // Count 和 Find 各自复制一份条件
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var ms []user.UserModel
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return user.ToDomainList(ms), total, nil
}
