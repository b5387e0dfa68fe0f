package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroFillMonths(t *testing.T) {
	t.Parallel()

	sparse := []MonthlyLeaveCount{
		{Month: 3, Total: 3, Approved: 2, Rejected: 1},
		{Month: 11, Total: 4, Pending: 4},
	}

	full := ZeroFillMonths(sparse)

	require.Len(t, full, 12)
	for i, m := range full {
		assert.Equal(t, i+1, m.Month)
	}
	assert.Equal(t, 3, full[2].Total)
	assert.Equal(t, 2, full[2].Approved)
	assert.Equal(t, 1, full[2].Rejected)
	assert.Equal(t, 4, full[10].Total)
	assert.Equal(t, 4, full[10].Pending)
	assert.Zero(t, full[0].Total)
	assert.Zero(t, full[0].Approved)
	assert.Zero(t, full[11].Pending)
}

func TestZeroFillMonths_Empty(t *testing.T) {
	t.Parallel()

	full := ZeroFillMonths(nil)

	require.Len(t, full, 12)
	for i, m := range full {
		assert.Equal(t, i+1, m.Month)
		assert.Zero(t, m.Total)
		assert.Zero(t, m.Approved)
		assert.Zero(t, m.Rejected)
		assert.Zero(t, m.Pending)
	}
}
