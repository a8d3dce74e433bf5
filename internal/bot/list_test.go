package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPagingInRange(t *testing.T) {
	page, perPage, totalPages := clampPaging(2, 10, 35)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, perPage)
	assert.Equal(t, 4, totalPages)
}

func TestClampPagingBelowRange(t *testing.T) {
	page, _, _ := clampPaging(0, 10, 35)
	assert.Equal(t, 1, page)
	page, _, _ = clampPaging(-3, 10, 35)
	assert.Equal(t, 1, page)
}

func TestClampPagingAboveRange(t *testing.T) {
	page, _, totalPages := clampPaging(99, 10, 35)
	assert.Equal(t, totalPages, page)
	assert.Equal(t, 4, totalPages)
}

func TestClampPagingInvalidPerPage(t *testing.T) {
	_, perPage, _ := clampPaging(1, 7, 35)
	assert.Equal(t, defaultPerPage, perPage)
	_, perPage, _ = clampPaging(1, 0, 35)
	assert.Equal(t, defaultPerPage, perPage)
}

func TestClampPagingEmptyCollection(t *testing.T) {
	page, perPage, totalPages := clampPaging(3, 5, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 5, perPage)
	assert.Equal(t, 1, totalPages)
	// Offset must never go negative.
	assert.GreaterOrEqual(t, (page-1)*perPage, 0)
}
