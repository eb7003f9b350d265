package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"50.00", 5000, true},
		{"50", 5000, true},
		{"50.5", 5050, true},
		{"0.07", 7, true},
		{"-12.30", -1230, true},
		{" 99.99 ", 9999, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.234", 0, false},
	}

	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if !tc.ok {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.cents, m.Cents(), "input %q", tc.in)
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "50.00", MoneyFromCents(5000).String())
	assert.Equal(t, "0.07", MoneyFromCents(7).String())
	assert.Equal(t, "-12.30", MoneyFromCents(-1230).String())
}

func TestMoneyMulDays(t *testing.T) {
	rate := MoneyFromCents(5000)
	assert.Equal(t, "100.00", rate.MulDays(2).String())
	assert.Equal(t, "50.00", rate.MulDays(1).String())
}

func TestDurationDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	// Two whole days.
	assert.Equal(t, int64(2), DurationDays(start, start.AddDate(0, 0, 2)))

	// Equal dates floor to one day.
	assert.Equal(t, int64(1), DurationDays(start, start))

	// Crossed dates floor to one day.
	assert.Equal(t, int64(1), DurationDays(start, start.AddDate(0, 0, -3)))

	// Partial day rounds up.
	assert.Equal(t, int64(2), DurationDays(start, start.Add(36*time.Hour)))
}
