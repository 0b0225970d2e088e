package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/qrmenu-app/utils"
)

func TestTotals(t *testing.T) {
	tests := []struct {
		name                 string
		lines                []float64
		subtotal, tax, total float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{100}, 100, 10, 110},
		{"cents", []float64{utils.LineSubtotal(12.5, 3), utils.LineSubtotal(7.25, 1)}, 44.75, 4.48, 49.23},
		{"float noise", []float64{0.1, 0.2}, 0.3, 0.03, 0.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := utils.Totals(tt.lines)
			assert.Equal(t, tt.subtotal, subtotal)
			assert.Equal(t, tt.tax, tax)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestRoundAndSum(t *testing.T) {
	assert.Equal(t, 2.68, utils.Round2(2.675))
	assert.Equal(t, 0.3, utils.Sum(0.1, 0.2))
	assert.Equal(t, 37.5, utils.LineSubtotal(12.5, 3))
}

func TestFormatLira(t *testing.T) {
	tests := map[float64]string{
		0:           "0,00 TL",
		5.5:         "5,50 TL",
		999.999:     "1.000,00 TL",
		15000.5:     "15.000,50 TL",
		1234567.891: "1.234.567,89 TL",
		-42:         "-42,00 TL",
	}
	for in, want := range tests {
		assert.Equal(t, want, utils.FormatLira(in), "amount %v", in)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	utils.SetJWTSecret("test_secret", time.Hour)

	token, err := utils.GenerateToken(9, "staff")
	require.NoError(t, err)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "staff", claims.Role)

	utils.SetJWTSecret("rotated_secret", time.Hour)
	_, err = utils.ParseToken(token)
	assert.Error(t, err, "token signed with the old secret")
	utils.SetJWTSecret("test_secret", time.Hour)
}

func TestParseTokenRejects(t *testing.T) {
	utils.SetJWTSecret("test_secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.CustomClaims{
		UserID: 1,
		Role:   "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("test_secret"))
	require.NoError(t, err)
	_, err = utils.ParseToken(signed)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &utils.CustomClaims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = utils.ParseToken(unsigned)
	assert.Error(t, err)

	_, err = utils.ParseToken("")
	assert.Error(t, err)
}
