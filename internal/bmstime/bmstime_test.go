package bmstime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjTimeOrdering(t *testing.T) {
	// S5 from spec.md §8.
	a := NewObjTime(1, 1, 2)
	b := NewObjTime(1, 2, 4)
	assert.Equal(t, 0, a.Compare(b))
	assert.True(t, a.Equal(b))

	c := NewObjTime(1, 1, 3)
	d := NewObjTime(1, 1, 2)
	assert.True(t, c.Less(d))

	e := NewObjTime(1, 0, 1)
	f := NewObjTime(2, 0, 1)
	assert.True(t, e.Less(f))
}

func TestObjTimeInvalidPanics(t *testing.T) {
	assert.Panics(t, func() { NewObjTime(1, 0, 0) })
	assert.Panics(t, func() { NewObjTime(1, 2, 2) })
}

func TestGCDLCM(t *testing.T) {
	assert.Equal(t, uint64(6), GCD(48, 18))
	assert.Equal(t, uint64(6), GCD(18, 48))
	assert.Equal(t, uint64(5), GCD(0, 5))
	assert.Equal(t, uint64(17), GCD(17, 17))

	assert.Equal(t, uint64(12), LCM(4, 6))
	assert.Equal(t, uint64(0), LCM(0, 5))
	assert.Equal(t, uint64(42), LCM(21, 6))
}

func TestDecimalParsing(t *testing.T) {
	d, err := ParseDecimal("0.75")
	require.NoError(t, err)
	assert.True(t, d.IsPositive())
	assert.InDelta(t, 0.75, d.Float64(), 1e-9)

	_, err = ParseDecimal("nan")
	assert.Error(t, err)
	_, err = ParseDecimal("Infinity")
	assert.Error(t, err)
	_, err = ParseDecimal("")
	assert.Error(t, err)
}

func TestSectionLenValidation(t *testing.T) {
	// S4 from spec.md §8.
	d, _ := ParseDecimal("0.75")
	sl, err := NewSectionLen(d)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, sl.Float64(), 1e-9)

	zero, _ := ParseDecimal("0")
	_, err = NewSectionLen(zero)
	assert.EqualError(t, err, "section length must be greater than zero")

	neg, _ := ParseDecimal("-1")
	_, err = NewSectionLen(neg)
	assert.Error(t, err)
}
