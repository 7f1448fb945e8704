package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date("2024-02-29"), d)

	for _, bad := range []string{"", "2023-02-29", "2024-3-1", "01-03-2024", "2024-03-01T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateScan(t *testing.T) {
	cases := []struct {
		src  any
		want Date
	}{
		{"2024-03-01", "2024-03-01"},
		{[]byte("2024-03-01"), "2024-03-01"},
		{"2024-03-01 00:00:00+00:00", "2024-03-01"},
		{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01"},
		{nil, ""},
	}
	for _, tc := range cases {
		var d Date
		require.NoError(t, d.Scan(tc.src))
		assert.Equal(t, tc.want, d)
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDateOf(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 1st is already the 2nd in India
	ts := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC).In(ist)
	assert.Equal(t, Date("2024-03-02"), DateOf(ts))
}

func TestPaymentMethod(t *testing.T) {
	pm, err := ParsePaymentMethod("online")
	require.NoError(t, err)
	assert.Equal(t, PaymentOnline, pm)

	_, err = ParsePaymentMethod("CASH")
	assert.EqualError(t, err, "payment_method must be cash or online")
}
