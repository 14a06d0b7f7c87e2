package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration("5m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-20")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.December, d.Month())

	d, err = ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("20/12/2025")
	assert.Error(t, err)
}

func TestYearBounds(t *testing.T) {
	from, to := YearBounds(2025)
	assert.Equal(t, 2025, from.Year())
	assert.Equal(t, 2026, to.Year())
	assert.Equal(t, time.January, to.Month())
}
