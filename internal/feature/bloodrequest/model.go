package bloodrequest

import "blood-donor-service/internal/domain"

type BloodRequestModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	HospitalID int64  `gorm:"not null"` // 逻辑上指向 users.id，不建外键约束
	BloodType  string `gorm:"index;not null"`
	Status     string `gorm:"size:32;not null;default:pending"`
}

func (BloodRequestModel) TableName() string { return "blood_requests" }

func FromDomain(r *domain.BloodRequest) *BloodRequestModel {
	return &BloodRequestModel{
		ID:         r.ID,
		HospitalID: r.HospitalID,
		BloodType:  r.BloodType,
		Status:     r.Status,
	}
}

func (m *BloodRequestModel) ToDomain() domain.BloodRequest {
	return domain.BloodRequest{
		ID:         m.ID,
		HospitalID: m.HospitalID,
		BloodType:  m.BloodType,
		Status:     m.Status,
	}
}

func ToDomainList(ms []BloodRequestModel) []domain.BloodRequest {
	out := make([]domain.BloodRequest, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out
}
