package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blood-donor-service/internal/core/cache"
	"blood-donor-service/internal/domain"
)

type RegisterInput struct {
	Name        string
	BloodType   string
	Role        string
	ContactInfo string
	Available   *bool // nil 视为 true
}

type BloodRequestInput struct {
	HospitalID int64
	BloodType  string
}

type Page[T any] struct {
	Items []T
	Total int64
}

// DonorService 注册 / 用血请求 / 查询；role、blood_type 不做枚举校验
type DonorService struct {
	users    domain.UserRepository
	requests domain.BloodRequestRepository
	cache    *cache.Cache // 可为 nil
	log      *zap.Logger
}

func NewDonorService(users domain.UserRepository, requests domain.BloodRequestRepository, c *cache.Cache, l *zap.Logger) *DonorService {
	if l == nil {
		l = zap.NewNop()
	}
	return &DonorService{users: users, requests: requests, cache: c, log: l}
}

func donorsKey(bloodType string) string { return "donors:" + bloodType }

const hospitalsKey = "hospitals"

func (s *DonorService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	u := &domain.User{
		Name:        in.Name,
		BloodType:   in.BloodType,
		Role:        in.Role,
		ContactInfo: in.ContactInfo,
		Available:   in.Available == nil || *in.Available,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.cache != nil {
		// 任意新用户都可能改变这两个列表
		if err := s.cache.Invalidate(ctx, donorsKey(u.BloodType), hospitalsKey); err != nil {
			s.log.Warn("cache invalidate failed", zap.Int64("user_id", u.ID), zap.Error(err))
		}
	}
	s.log.Info("user registered", zap.Int64("id", u.ID), zap.String("role", u.Role), zap.String("blood_type", u.BloodType))
	return u, nil
}

// RequestBlood 状态固定写 pending，不校验 hospital_id
func (s *DonorService) RequestBlood(ctx context.Context, in BloodRequestInput) (*domain.BloodRequest, error) {
	r := &domain.BloodRequest{
		HospitalID: in.HospitalID,
		BloodType:  in.BloodType,
		Status:     domain.StatusPending,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("blood requested", zap.Int64("id", r.ID), zap.Int64("hospital_id", r.HospitalID), zap.String("blood_type", r.BloodType))
	return r, nil
}

// AvailableDonors 精确匹配 blood_type，没有结果返回 domain.ErrNotFound
func (s *DonorService) AvailableDonors(ctx context.Context, bloodType string) ([]domain.User, error) {
	return s.nonEmpty(ctx, donorsKey(bloodType), func(ctx context.Context) ([]domain.User, error) {
		return s.users.FindAvailableDonors(ctx, bloodType)
	})
}

func (s *DonorService) Hospitals(ctx context.Context) ([]domain.User, error) {
	return s.nonEmpty(ctx, hospitalsKey, func(ctx context.Context) ([]domain.User, error) {
		return s.users.FindByRole(ctx, domain.RoleHospital)
	})
}

// nonEmpty 空结果转成 ErrNotFound，这样空列表不会进缓存
func (s *DonorService) nonEmpty(ctx context.Context, key string, find func(context.Context) ([]domain.User, error)) ([]domain.User, error) {
	load := func(ctx context.Context) ([]domain.User, error) {
		us, err := find(ctx)
		if err != nil {
			return nil, err
		}
		if len(us) == 0 {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return us, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(ctx, s.cache, key, load)
}

func (s *DonorService) ListUsers(ctx context.Context, f domain.UserFilter, offset, limit int) (Page[domain.User], error) {
	items, total, err := s.users.List(ctx, f, offset, limit)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return Page[domain.User]{Items: items, Total: total}, nil
}

func (s *DonorService) ListBloodRequests(ctx context.Context, f domain.BloodRequestFilter, offset, limit int) (Page[domain.BloodRequest], error) {
	items, total, err := s.requests.List(ctx, f, offset, limit)
	if err != nil {
		return Page[domain.BloodRequest]{}, err
	}
	return Page[domain.BloodRequest]{Items: items, Total: total}, nil
}
