package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "blood-donor-service/internal/transport/http/middleware"
	resp "blood-donor-service/internal/transport/http/response"
)

// Style 响应体风格
type Style int

const (
	Plain    Style = iota // 成功直接返回数据，失败 {"detail": "..."}
	Envelope              // {code,msg,data}
)

type EZ struct {
	g     *gin.RouterGroup
	style Style
	log   *zap.Logger
}

func New(g *gin.RouterGroup, style Style, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, style: style, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 请求体 JSON
	BindURI  Binder = "uri"  // 路径参数 /:blood_type
	BindNone Binder = "none"
)

// AErr 统一错误对象
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func Unprocessable(err error) error {
	return &AErr{Code: resp.CodeUnprocessable, Msg: err.Error(), Err: err}
}
func NotFound(msg string) error { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			e.fail(c, bindError(err))
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		if e.style == Envelope {
			c.JSON(http.StatusOK, resp.OK(out))
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		return c.ShouldBindJSON(in)
	case BindURI:
		return c.ShouldBindUri(in)
	}
	return nil
}

// bindError 请求体超限 413，其余（JSON 语法、类型、必填）422
func bindError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &AErr{Code: resp.CodeTooLarge, Msg: "request body too large", Err: err}
	}
	return Unprocessable(err)
}

func (e EZ) fail(c *gin.Context, err error) {
	ae := &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
	errors.As(err, &ae)
	if errors.Is(err, context.DeadlineExceeded) {
		ae = &AErr{Code: resp.CodeGatewayTimeout, Msg: "timeout", Err: err}
	}
	if ae.Code >= resp.CodeServerError {
		_ = c.Error(err)
		e.log.Error("action failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(mdw.KeyRequestID)),
			zap.Error(err),
		)
	}
	if e.style == Envelope {
		c.AbortWithStatusJSON(resp.Status(ae.Code), resp.Error(ae.Code, ae.Error()))
		return
	}
	c.AbortWithStatusJSON(resp.Status(ae.Code), resp.DetailOf(ae.Code, ae.Error()))
}
