package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-donor-service/internal/domain"
	"blood-donor-service/internal/service"
	httpez "blood-donor-service/internal/transport/http/ez"
)

// AdminHandler 管理端只读列表
type AdminHandler struct {
	svc *service.DonorService
	log *zap.Logger
}

func NewAdminHandler(svc *service.DonorService, l *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: l}
}

type userQ struct {
	Role      string `form:"role"`
	BloodType string `form:"blood_type"`
	Q         string `form:"q"` // 按 name / contact_info 模糊搜
}

type requestQ struct {
	Status     string `form:"status"`
	BloodType  string `form:"blood_type"`
	HospitalID int64  `form:"hospital_id"`
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	ez := httpez.New(g, httpez.Envelope, h.log)

	// GET /admin/v1/users
	httpez.List(ez, httpez.ListConfig[userQ, domain.User]{
		Path: "/users",
		Load: func(c *gin.Context, f *userQ, offset, limit int) ([]domain.User, int64, error) {
			p, err := h.svc.ListUsers(c.Request.Context(), domain.UserFilter{
				Role: f.Role, BloodType: f.BloodType, Q: f.Q,
			}, offset, limit)
			return p.Items, p.Total, err
		},
	})

	// GET /admin/v1/blood-requests
	httpez.List(ez, httpez.ListConfig[requestQ, domain.BloodRequest]{
		Path: "/blood-requests",
		Load: func(c *gin.Context, f *requestQ, offset, limit int) ([]domain.BloodRequest, int64, error) {
			p, err := h.svc.ListBloodRequests(c.Request.Context(), domain.BloodRequestFilter{
				Status: f.Status, BloodType: f.BloodType, HospitalID: f.HospitalID,
			}, offset, limit)
			return p.Items, p.Total, err
		},
	})
}
