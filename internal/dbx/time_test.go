package dbx

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_RoundTrip(t *testing.T) {
	orig := time.Date(2026, 4, 5, 9, 30, 0, 123456789, time.UTC)
	parsed, err := ParseTime(FormatTime(orig))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
}

func TestFormatTime_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	orig := time.Date(2026, 4, 5, 12, 0, 0, 0, loc)
	parsed, err := ParseTime(FormatTime(orig))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestNullTime_RoundTrip(t *testing.T) {
	assert.Nil(t, FormatNullTime(nil))

	orig := time.Date(2026, 4, 5, 9, 30, 0, 0, time.UTC)
	v := FormatNullTime(&orig)
	require.IsType(t, "", v)

	back, err := ParseNullTime(sql.NullString{String: v.(string), Valid: true})
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.True(t, back.Equal(orig))

	none, err := ParseNullTime(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, none)
}
