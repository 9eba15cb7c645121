package domain

import (
	"context"
	"errors"
)

// 约定的角色取值；系统本身不校验，任意字符串都能落库
const (
	RoleDonor    = "donor"
	RoleHospital = "hospital"
)

const StatusPending = "pending"

var ErrNotFound = errors.New("not found")

// User 献血者或医院
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	BloodType   string `json:"blood_type"`
	Role        string `json:"role"`
	ContactInfo string `json:"contact_info"`
	Available   bool   `json:"available"`
}

// BloodRequest 医院的用血请求；HospitalID 不做存在性校验
type BloodRequest struct {
	ID         int64  `json:"id"`
	HospitalID int64  `json:"hospital_id"`
	BloodType  string `json:"blood_type"`
	Status     string `json:"status"`
}

type UserFilter struct {
	Role      string
	BloodType string
	Q         string // name / contact_info 模糊匹配
}

type BloodRequestFilter struct {
	Status     string
	BloodType  string
	HospitalID int64
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// FindAvailableDonors 不排序，按存储自然顺序返回
	FindAvailableDonors(ctx context.Context, bloodType string) ([]User, error)
	FindByRole(ctx context.Context, role string) ([]User, error)
	List(ctx context.Context, f UserFilter, offset, limit int) ([]User, int64, error)
}

type BloodRequestRepository interface {
	Create(ctx context.Context, r *BloodRequest) error
	List(ctx context.Context, f BloodRequestFilter, offset, limit int) ([]BloodRequest, int64, error)
}
