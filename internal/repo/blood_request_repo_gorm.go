package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"blood-donor-service/internal/domain"
	"blood-donor-service/internal/feature/bloodrequest"
)

type BloodRequestRepo struct{ db *gorm.DB }

func NewBloodRequestRepo(db *gorm.DB) *BloodRequestRepo { return &BloodRequestRepo{db: db} }

var _ domain.BloodRequestRepository = (*BloodRequestRepo)(nil)

func (r *BloodRequestRepo) Create(ctx context.Context, br *domain.BloodRequest) error {
	m := bloodrequest.FromDomain(br)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create blood request: %w", err)
	}
	*br = m.ToDomain()
	return nil
}

func (r *BloodRequestRepo) List(ctx context.Context, f domain.BloodRequestFilter, offset, limit int) ([]domain.BloodRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&bloodrequest.BloodRequestModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BloodType != "" {
		q = q.Where("blood_type = ?", f.BloodType)
	}
	if f.HospitalID != 0 {
		q = q.Where("hospital_id = ?", f.HospitalID)
	}

	q = q.Session(&gorm.Session{}) // Count 和 Find 各自复制一份条件
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count blood requests: %w", err)
	}
	var ms []bloodrequest.BloodRequestModel
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("list blood requests: %w", err)
	}
	return bloodrequest.ToDomainList(ms), total, nil
}
