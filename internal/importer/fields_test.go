package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/icabanken/internal/model"
)

func TestValidateAccountNumber(t *testing.T) {
	tests := []struct {
		in   string
		want model.AccountNumber
	}{
		{"  9274-123 456 7", "9274-123 456 7"},
		{"9274-123 456 6     ", "9274-123 456 6"},
		{"   9274-123 456 5     ", "9274-123 456 5"},
		{"9274-123 456 4", "9274-123 456 4"},
		{"\t9274-261 885 6\r", "9274-261 885 6"},
	}
	for _, tt := range tests {
		got, err := ValidateAccountNumber(tt.in)
		require.NoError(t, err, "ValidateAccountNumber(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidateAccountNumber_Invalid(t *testing.T) {
	for _, in := range []string{
		"9274-123 4 56 7",
		"9274123 456 7",
		"9274-123456 7",
		"9274-123 4567",
		"9274-123  456 7",
		"927-123 456 7",
		"9274-123 456 78",
		"9274-123 456 7x",
		"abcd-efg hij k",
		"",
	} {
		_, err := ValidateAccountNumber(in)
		assert.ErrorIs(t, err, ErrInvalidAccountNumber, "ValidateAccountNumber(%q)", in)
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"  2023-10-01", time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-10-02   ", time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)},
		{"   2023-10-03   ", time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC)},
		{"2023-10-04", time.Date(2023, 10, 4, 0, 0, 0, 0, time.UTC)},
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ValidateDate(tt.in)
		require.NoError(t, err, "ValidateDate(%q)", tt.in)
		assert.True(t, tt.want.Equal(got), "ValidateDate(%q) = %s", tt.in, got)
	}
}

func TestValidateDate_Invalid(t *testing.T) {
	for _, in := range []string{
		"20231001",
		"23-10-02",
		"03-10-2023",
		"2023/10/01",
		"2023-10-1",
		"2023-02-30",
		"2023-13-01",
		"2023-02-29",
		"2023-10-01 12:00",
		"",
	} {
		_, err := ValidateDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, "ValidateDate(%q)", in)
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-192,75 kr", "-192.75"},
		{"-1 192,75 kr", "-1192.75"},
		{"   200 510,00 kr     ", "200510.00"},
		{"-150 512,94 kr", "-150512.94"},
		{"0,00 kr", "0.00"},
		{"1 000 000,01 kr", "1000000.01"},
		{"-192,75kr", "-192.75"},
	}
	for _, tt := range tests {
		got, err := ValidateAmount(tt.in)
		require.NoError(t, err, "ValidateAmount(%q)", tt.in)
		assert.Equal(t, tt.want, got.StringFixed(2), "ValidateAmount(%q)", tt.in)
	}
}

func TestValidateAmount_Exact(t *testing.T) {
	// Repeated decimal arithmetic must not drift the way floats do.
	a, err := ValidateAmount("0,10 kr")
	require.NoError(t, err)
	sum := a
	for i := 0; i < 9; i++ {
		sum = sum.Add(a)
	}
	assert.Equal(t, "1", sum.String())
}

func TestValidateAmount_Invalid(t *testing.T) {
	for _, in := range []string{
		"11927.5kr",
		"-192.75 kr",
		"1192,75 kr",
		"1 92,75 kr",
		"-192,7 kr",
		"-192,755 kr",
		"-192,75  kr",
		"-192,75 SEK",
		"-192,75",
		"--192,75 kr",
		"+192,75 kr",
		"1.192,75 kr",
		"",
	} {
		_, err := ValidateAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "ValidateAmount(%q)", in)
	}
}
