package objid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCaseInsensitive(t *testing.T) {
	aa, err := Parse("aa", false)
	require.NoError(t, err)
	AA, err := Parse("AA", false)
	require.NoError(t, err)
	assert.Equal(t, AA, aa)
}

func TestParseCaseSensitive(t *testing.T) {
	aa, err := Parse("aa", true)
	require.NoError(t, err)
	AA, err := Parse("AA", true)
	require.NoError(t, err)
	assert.NotEqual(t, AA, aa)
}

func TestParseFoldsLowercaseWithoutBase62(t *testing.T) {
	id, err := Parse("az", false)
	require.NoError(t, err)
	assert.Equal(t, "AZ", id.String())
}

func TestParseInvalidLength(t *testing.T) {
	_, err := Parse("a", false)
	assert.Error(t, err)
	_, err = Parse("abc", false)
	assert.Error(t, err)
}

func TestNullIsZero(t *testing.T) {
	id, err := Parse("00", false)
	require.NoError(t, err)
	assert.True(t, id.IsNull())
	assert.Equal(t, Null, id)
}

func TestRoundTrip(t *testing.T) {
	id, err := Parse("G7", true)
	require.NoError(t, err)
	assert.Equal(t, "G7", id.String())
}

func TestFold(t *testing.T) {
	lower, _ := Parse("az", true)
	upper, _ := Parse("AZ", true)
	assert.Equal(t, upper, Fold(lower))
}
