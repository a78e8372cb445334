package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := CheckedAdd(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum)

	_, err = CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrArithmetic)

	sum, err = CheckedAdd(math.MaxUint64, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)
}

func TestCheckedSub(t *testing.T) {
	diff, err := CheckedSub(5, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), diff)

	_, err = CheckedSub(3, 5)
	assert.ErrorIs(t, err, ErrArithmetic)

	diff, err = CheckedSub(5, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), diff)
}

func TestCheckedMul(t *testing.T) {
	prod, err := CheckedMul(1_000_000, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000_000), prod)

	_, err = CheckedMul(math.MaxUint64, 2)
	assert.ErrorIs(t, err, ErrArithmetic)

	prod, err = CheckedMul(math.MaxUint64, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), prod)
}

func TestCheckedDiv(t *testing.T) {
	q, err := CheckedDiv(10, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), q, "division rounds down")

	_, err = CheckedDiv(10, 0)
	assert.ErrorIs(t, err, ErrArithmetic)
}
