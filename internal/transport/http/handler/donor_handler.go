package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-donor-service/internal/domain"
	"blood-donor-service/internal/service"
	httpez "blood-donor-service/internal/transport/http/ez"
)

const (
	msgNoDonors    = "No available donors found"
	msgNoHospitals = "No hospitals found"
)

// DonorHandler 公开接口：注册 / 用血请求 / 查献血者 / 查医院
type DonorHandler struct {
	svc *service.DonorService
	log *zap.Logger
}

func NewDonorHandler(svc *service.DonorService, l *zap.Logger) *DonorHandler {
	return &DonorHandler{svc: svc, log: l}
}

// 指针字段 + required：只要求字段存在且类型正确，空串合法
type registerIn struct {
	Name        *string         `json:"name"         binding:"required"`
	BloodType   *string         `json:"blood_type"   binding:"required"`
	Role        *string         `json:"role"         binding:"required"`
	ContactInfo *string         `json:"contact_info" binding:"required"`
	Available   json.RawMessage `json:"available"` // 缺省为 true，显式 null 不合法
}

// status 不在入参里，传了也会被忽略
type requestBloodIn struct {
	HospitalID *int64  `json:"hospital_id" binding:"required"`
	BloodType  *string `json:"blood_type"  binding:"required"`
}

type donorsIn struct {
	BloodType string `uri:"blood_type"`
}

func (h *DonorHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, httpez.Plain, h.log)

	httpez.RegisterAction(ez, httpez.Action[registerIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/register/",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (*domain.User, error) {
			available, err := optionalBool("available", in.Available)
			if err != nil {
				return nil, err
			}
			u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
				Name:        *in.Name,
				BloodType:   *in.BloodType,
				Role:        *in.Role,
				ContactInfo: *in.ContactInfo,
				Available:   available,
			})
			if err != nil {
				return nil, httpez.Internal("register user failed", err)
			}
			return u, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[requestBloodIn, *domain.BloodRequest]{
		Method: http.MethodPost,
		Path:   "/request-blood/",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *requestBloodIn) (*domain.BloodRequest, error) {
			r, err := h.svc.RequestBlood(c.Request.Context(), service.BloodRequestInput{
				HospitalID: *in.HospitalID,
				BloodType:  *in.BloodType,
			})
			if err != nil {
				return nil, httpez.Internal("request blood failed", err)
			}
			return r, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[donorsIn, []domain.User]{
		Method: http.MethodGet,
		Path:   "/donors/:blood_type",
		Binder: httpez.BindURI,
		Handler: func(c *gin.Context, in *donorsIn) ([]domain.User, error) {
			us, err := h.svc.AvailableDonors(c.Request.Context(), in.BloodType)
			return us, mapListErr(err, msgNoDonors, "find donors failed")
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/hospitals/",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			us, err := h.svc.Hospitals(c.Request.Context())
			return us, mapListErr(err, msgNoHospitals, "find hospitals failed")
		},
	})
}

func mapListErr(err error, notFound, internal string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return httpez.NotFound(notFound)
	default:
		return httpez.Internal(internal, err)
	}
}

// optionalBool 字段缺省返回 nil；null 或非布尔值按校验失败处理
func optionalBool(field string, raw json.RawMessage) (*bool, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var b *bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, httpez.Unprocessable(fmt.Errorf("%s: %w", field, err))
	}
	if b == nil {
		return nil, httpez.Unprocessable(fmt.Errorf("%s: must be a boolean, got null", field))
	}
	return b, nil
}
