package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/pewpola/dao-condominium/pkg/domain"
)

func TestDefaultLayoutContains(t *testing.T) {
	layout := DefaultLayout()

	for _, r := range []id.ResidenceID{1101, 1202, 1301, 1505, 2102, 2505} {
		assert.True(t, layout.Contains(r), "expected %d to exist", r)
	}
	for _, r := range []id.ResidenceID{0, -1101, 1100, 1106, 1601, 3000, 3101, 2000, 99999} {
		assert.False(t, layout.Contains(r), "expected %d not to exist", r)
	}
}

func TestLayoutContainsIsPure(t *testing.T) {
	layout := DefaultLayout()
	first := make(map[id.ResidenceID]bool)
	for r := id.ResidenceID(0); r < 4000; r++ {
		first[r] = layout.Contains(r)
	}
	for r := id.ResidenceID(3999); r >= 0; r-- {
		assert.Equal(t, first[r], layout.Contains(r))
	}
}

func TestLayoutSizeMatchesContains(t *testing.T) {
	layout, err := NewLayout(3, 4, 6)
	require.NoError(t, err)

	count := 0
	for r := id.ResidenceID(0); r < 10000; r++ {
		if layout.Contains(r) {
			count++
		}
	}
	assert.Equal(t, layout.Size(), count)
}

func TestNewLayoutValidation(t *testing.T) {
	_, err := NewLayout(0, 5, 5)
	assert.Error(t, err)
	_, err = NewLayout(1, 10, 5)
	assert.Error(t, err)
	_, err = NewLayout(1, 5, 100)
	assert.Error(t, err)
	_, err = NewLayout(1, 1, 1)
	assert.NoError(t, err)
}
