package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLFilterEmpty(t *testing.T) {
	var f sqlFilter
	assert.Equal(t, "", f.where(), "empty filter must impose no constraint")
	assert.Empty(t, f.args)
}

func TestSQLFilterNumbering(t *testing.T) {
	var f sqlFilter
	f.add("is_active = $%d", true)
	f.add("(name ILIKE $%d OR description ILIKE $%d)", "%red%", "%red%")
	f.add("price >= $%d", int64(1000))

	assert.Equal(t,
		" WHERE is_active = $1 AND (name ILIKE $2 OR description ILIKE $3) AND price >= $4",
		f.where())
	assert.Equal(t, []any{true, "%red%", "%red%", int64(1000)}, f.args)
}

func TestSQLFilterPaged(t *testing.T) {
	var f sqlFilter
	f.add("status = $%d", "ongoing")
	frag, args := f.paged(10, 20)

	assert.Equal(t, " LIMIT $2 OFFSET $3", frag)
	assert.Equal(t, []any{"ongoing", 10, 20}, args)
}

func TestSQLFilterPagedNoClauses(t *testing.T) {
	var f sqlFilter
	frag, args := f.paged(10, 0)
	assert.Equal(t, " LIMIT $1 OFFSET $2", frag)
	assert.Equal(t, []any{10, 0}, args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%ginseng%", likePattern(" ginseng "))
}
