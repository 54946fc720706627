package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults applied", 0, 0, 1, 10},
		{"negative page clamped", -3, 5, 1, 5},
		{"limit capped", 2, 500, 2, 50},
		{"valid passthrough", 3, 20, 3, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizePage(tt.page, tt.limit, 10, 50)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, PageParams{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 40, PageParams{Page: 5, Limit: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestNewPagedList(t *testing.T) {
	items := []string{"a", "b"}
	p := PageParams{Page: 2, Limit: 10}

	list := NewPagedList(items, 25, p)

	assert.Equal(t, items, list.Items)
	assert.Equal(t, 25, list.TotalItems)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, 2, list.CurrentPage)
}
