package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageCtx(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/items?"+query, nil)
	return c
}

func TestParsePage(t *testing.T) {
	opt := PageOptions{DefaultLimit: 10, MaxLimit: 100}

	p := ParsePage(pageCtx("page=3&limit=25"), opt)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset())

	// Defaults apply when params are absent or malformed.
	p = ParsePage(pageCtx(""), opt)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = ParsePage(pageCtx("page=abc&limit=-5"), opt)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	// Limit is clamped to the maximum.
	p = ParsePage(pageCtx("limit=5000"), opt)
	assert.Equal(t, 100, p.Limit)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(42, PageParams{Page: 2, Limit: 10})
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(42), meta.Total)
}
