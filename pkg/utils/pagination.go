package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const DefaultPage = 1

// PageOptions carries list-endpoint limits; constructed from config, never
// read from the environment here.
type PageOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// PageParams is the parsed page/limit pair of a list request.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the paging block of a list response.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// BuildMeta assembles response meta from a total row count.
func BuildMeta(total int64, p PageParams) PageMeta {
	return PageMeta{Page: p.Page, Limit: p.Limit, Total: total}
}

// ParsePage extracts page and limit query params, clamped to the options.
func ParsePage(c *gin.Context, opt PageOptions) PageParams {
	page := atoiDefault(strings.TrimSpace(c.Query("page")), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := atoiDefault(strings.TrimSpace(c.Query("limit")), opt.DefaultLimit)
	if limit < 1 {
		limit = opt.DefaultLimit
	}
	if opt.MaxLimit > 0 && limit > opt.MaxLimit {
		limit = opt.MaxLimit
	}

	return PageParams{Page: page, Limit: limit}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
