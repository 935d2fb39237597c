package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	r := Request{}
	r.Normalize()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, DefaultLimit, r.Limit)
}

func TestNormalizeClamping(t *testing.T) {
	r := Request{Page: -3, Limit: 500}
	r.Normalize()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, MaxLimit, r.Limit)

	r = Request{Page: 2, Limit: 25}
	r.Normalize()
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 25, r.Limit)
}

func TestOffset(t *testing.T) {
	r := Request{Page: 1, Limit: 10}
	assert.Equal(t, 0, r.Offset())

	r = Request{Page: 2, Limit: 10}
	assert.Equal(t, 10, r.Offset())

	r = Request{Page: 7, Limit: 25}
	assert.Equal(t, 150, r.Offset())
}

func TestNewResultPages(t *testing.T) {
	cases := []struct {
		total, limit, pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{15, 10, 2},
		{100, 10, 10},
		{101, 10, 11},
		{99, 100, 1},
	}
	for _, c := range cases {
		res := NewResult(Request{Page: 1, Limit: c.limit}, c.total)
		assert.Equal(t, c.pages, res.Pages, "total=%d limit=%d", c.total, c.limit)
		assert.Equal(t, c.total, res.Total)
	}
}

func TestResultBeyondLastPageKeepsTotal(t *testing.T) {
	// Requesting a page past the end still reports the true match count.
	res := NewResult(Request{Page: 9, Limit: 10}, 15)
	assert.Equal(t, 15, res.Total)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 9, res.Page)
}
