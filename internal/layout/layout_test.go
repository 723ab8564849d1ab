package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeFallsBackToDefault(t *testing.T) {
	l := New(12, map[int]int{4: 20})
	assert.Equal(t, 20, l.Size(4))
	assert.Equal(t, 12, l.Size(5))
}

func TestNewCopiesGroups(t *testing.T) {
	src := map[int]int{1: 3}
	l := New(12, src)
	src[1] = 99
	assert.Equal(t, 3, l.Size(1))
}

func TestIndex(t *testing.T) {
	l := New(12, map[int]int{9: 5, 0: 4, 3: 2})
	assert.Equal(t, []int{0, 3, 9}, l.IDs())
	assert.Equal(t, 11, l.Count())

	tests := []struct{ group, light, want int }{
		{0, 0, 0}, {0, 3, 3}, {3, 0, 4}, {3, 1, 5}, {9, 0, 6}, {9, 4, 10},
	}
	for _, tt := range tests {
		got, err := l.Index(tt.group, tt.light)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := l.Index(3, 2)
	assert.Error(t, err)
	_, err = l.Index(7, 0)
	assert.Error(t, err)
}
