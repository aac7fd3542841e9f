package dto

import "math"

// 分页默认值，未配置时使用
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageLimits 分页条数的缺省值与上限
type PageLimits struct {
	Default int
	Max     int
}

var pageLimits = PageLimits{Default: DefaultLimit, Max: MaxLimit}

// SetPageLimits 启动时按配置设置；非正数沿用内置默认值
func SetPageLimits(defaultLimit, maxLimit int) {
	l := PageLimits{Default: defaultLimit, Max: maxLimit}
	if l.Max < 1 {
		l.Max = MaxLimit
	}
	if l.Default < 1 {
		l.Default = DefaultLimit
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	pageLimits = l
}

// PageQuery 分页参数
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize 补齐默认值并限制最大条数；页码上限保证 Offset 不溢出
func (q PageQuery) Normalize() PageQuery {
	return q.NormalizeWith(pageLimits)
}

func (q PageQuery) NormalizeWith(l PageLimits) PageQuery {
	if l.Max < 1 {
		l.Max = MaxLimit
	}
	if l.Default < 1 {
		l.Default = DefaultLimit
	}
	if q.Limit < 1 {
		q.Limit = l.Default
	}
	if q.Limit > l.Max {
		q.Limit = l.Max
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if maxPage := math.MaxInt / q.Limit; q.Page > maxPage {
		q.Page = maxPage
	}
	return q
}

// Offset 当前页的偏移量
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page 分页结果
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPage 组装分页结果，items 为 nil 时输出空数组
func NewPage[T any](items []T, total int64, q PageQuery) *Page[T] {
	if items == nil {
		items = []T{}
	}
	var pages int64
	if q.Limit > 0 {
		pages = (total + int64(q.Limit) - 1) / int64(q.Limit)
	}
	return &Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}

// OwnerBrief 嵌套的上传者/作者信息
type OwnerBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}
