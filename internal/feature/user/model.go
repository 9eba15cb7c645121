package user

import "blood-donor-service/internal/domain"

type UserModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"index;not null"`
	BloodType   string `gorm:"index;not null"`
	Role        string `gorm:"index;not null"`
	ContactInfo string `gorm:"index;not null"`
	// 指针：gorm 对带 default 的零值字段会跳过，false 会被写成 true
	Available *bool `gorm:"not null;default:true"`
}

func (UserModel) TableName() string { return "users" }

func FromDomain(u *domain.User) *UserModel {
	available := u.Available
	return &UserModel{
		ID:          u.ID,
		Name:        u.Name,
		BloodType:   u.BloodType,
		Role:        u.Role,
		ContactInfo: u.ContactInfo,
		Available:   &available,
	}
}

func (m *UserModel) ToDomain() domain.User {
	return domain.User{
		ID:          m.ID,
		Name:        m.Name,
		BloodType:   m.BloodType,
		Role:        m.Role,
		ContactInfo: m.ContactInfo,
		Available:   m.Available == nil || *m.Available,
	}
}

func ToDomainList(ms []UserModel) []domain.User {
	out := make([]domain.User, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out
}
