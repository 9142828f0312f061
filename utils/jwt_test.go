package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminToken_RoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)

	sub, err := ExtractAdminSubject("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)
}

func TestAdminToken_Rejected(t *testing.T) {
	_, err := GenerateAdminToken("", "ops", time.Hour)
	assert.Error(t, err)

	token, err := GenerateAdminToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)
	_, err = ExtractAdminSubject("other", token)
	assert.Error(t, err)

	expired, err := GenerateAdminToken("s3cret", "ops", -time.Minute)
	require.NoError(t, err)
	_, err = ExtractAdminSubject("s3cret", expired)
	assert.Error(t, err)

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ops"})
	signed, err := noRole.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ExtractAdminSubject("s3cret", signed)
	assert.Error(t, err)
}
