package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", time.Hour)
	require.NoError(t, err)

	openID, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", openID)
}

func TestToken_Rejected(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", "user-1", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.Error(t, err)

	_, err = GenerateToken("secret", "", time.Hour)
	assert.Error(t, err)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit int
		want        Pagination
	}{
		{0, 0, Pagination{Page: 1, Limit: 20, Offset: 0}},
		{3, 10, Pagination{Page: 3, Limit: 10, Offset: 20}},
		{1, 500, Pagination{Page: 1, Limit: 100, Offset: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit))
	}
	assert.Equal(t, 3, NewPagination(1, 10).TotalPages(21))
	assert.Equal(t, 0, NewPagination(1, 10).TotalPages(0))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		minor    int64
		currency string
		want     string
	}{
		{0, "USD", "0.00 USD"},
		{5, "USD", "0.05 USD"},
		{123456, "MAD", "1,234.56 MAD"},
		{100000000, "", "1,000,000.00 USD"},
		{-2550, "EUR", "-25.50 EUR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.minor, tt.currency))
	}
}

func TestMajorUnits(t *testing.T) {
	assert.Equal(t, "1234.56", MajorUnits(123456).StringFixed(2))
	assert.Equal(t, "-0.05", MajorUnits(-5).StringFixed(2))
	assert.True(t, MajorUnits(250).Equal(MajorUnits(100).Add(MajorUnits(150))))
}

func TestLocale(t *testing.T) {
	assert.Equal(t, LocaleFr, ParseLocale("fr-FR"))
	assert.Equal(t, LocaleEn, ParseLocale("EN"))
	assert.Equal(t, LocaleAr, ParseLocale("de"))
	assert.True(t, LocaleAr.IsRTL())
	assert.False(t, LocaleEn.IsRTL())

	assert.Equal(t, "Salade", Pick(LocaleFr, "سلطة", "Salad", "Salade"))
	assert.Equal(t, "سلطة", Pick(LocaleFr, "سلطة", "Salad", ""))
}
