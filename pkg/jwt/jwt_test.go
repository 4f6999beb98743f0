package jwt

import (
	"testing"
	"time"

	"github.com/VictorAraujo38/akkadian-test/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s3cret", Issuer: "medsched"})
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, 3, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 3, claims.RoleID)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s3cret", Issuer: "medsched"})
	userID := uuid.New()

	expired, err := svc.GenerateToken(userID, 3, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	otherIssuer, err := NewJWTService(config.JWTConfig{Secret: "s3cret", Issuer: "elsewhere"}).GenerateToken(userID, 3, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(otherIssuer)
	assert.Error(t, err)

	otherSecret, err := NewJWTService(config.JWTConfig{Secret: "other", Issuer: "medsched"}).GenerateToken(userID, 3, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(otherSecret)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
