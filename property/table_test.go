package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Overlay(t *testing.T) {
	t.Parallel()

	base := Table{"a": "1", "b": "2"}

	merged := base.Overlay(Table{"b": "20"}, nil, Table{"c": "3", "b": "200"})

	assert.Equal(t, Table{"a": "1", "b": "200", "c": "3"}, merged)
	assert.Equal(t, Table{"a": "1", "b": "2"}, base, "overlay must not touch the receiver")
}

func TestTable_Accessors(t *testing.T) {
	t.Parallel()

	table := Table{"b": "2", "a": "1"}

	assert.Equal(t, []string{"a", "b"}, table.Keys())
	assert.Equal(t, "1", table.GetOr("a", "x"))
	assert.Equal(t, "x", table.GetOr("z", "x"))

	var empty Table

	assert.NotNil(t, empty.Clone())
	assert.Empty(t, empty.Keys())
}
