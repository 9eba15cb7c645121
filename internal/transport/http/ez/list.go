package ez

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// PageQuery ?page=&size=
type PageQuery struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=20"`
}

// Offset 规整 page/size 并返回 offset
func (q *PageQuery) Offset() int {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > maxPageSize {
		q.Size = 20
	}
	return (q.Page - 1) * q.Size
}

type ListOut[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// ListConfig F 为筛选条件（query 绑定），T 为列表元素
type ListConfig[F any, T any] struct {
	Path string
	Load func(c *gin.Context, filter *F, offset, limit int) ([]T, int64, error)
}

type listIn[F any] struct {
	PageQuery
	Filter F
}

// List 注册只读分页列表 GET Path
func List[F any, T any](e EZ, cfg ListConfig[F, T]) {
	RegisterAction(e, Action[listIn[F], ListOut[T]]{
		Method: http.MethodGet,
		Path:   cfg.Path,
		Binder: BindNone,
		Handler: func(c *gin.Context, q *listIn[F]) (ListOut[T], error) {
			if err := c.ShouldBindQuery(&q.PageQuery); err != nil {
				return ListOut[T]{}, Unprocessable(err)
			}
			if err := c.ShouldBindQuery(&q.Filter); err != nil {
				return ListOut[T]{}, Unprocessable(err)
			}
			offset := q.Offset()
			items, total, err := cfg.Load(c, &q.Filter, offset, q.Size)
			if err != nil {
				return ListOut[T]{}, Internal("list failed", err)
			}
			if items == nil {
				items = []T{}
			}
			return ListOut[T]{List: items, Total: total, Page: q.Page, Size: q.Size}, nil
		},
	})
}
