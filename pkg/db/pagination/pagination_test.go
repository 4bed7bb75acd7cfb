package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pagination{Page: 0, PageSize: 0}.Normalize(10, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)

	p = Pagination{Page: 5, PageSize: 500}.Normalize(10, 100)
	assert.Equal(t, 5, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = Pagination{Page: -3, PageSize: 25}.Normalize(10, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PageSize)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, PageSize: 10}.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(Pagination{Page: 3, PageSize: 10}, 25)
	assert.Equal(t, 3, info.Page)
	assert.Equal(t, int64(25), info.TotalCount)
	assert.Equal(t, 3, info.TotalPages)

	info = BuildPageInfo(Pagination{Page: 1, PageSize: 10}, 0)
	assert.Equal(t, 0, info.TotalPages)

	info = BuildPageInfo(Pagination{Page: 1, PageSize: 10}, 30)
	assert.Equal(t, 3, info.TotalPages)
}
