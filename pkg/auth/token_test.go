package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "media-saas-test"}

func TestMintAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	signed, err := MintAccessToken(testJWT, time.Now(), "user-42", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(testJWT, signed)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.UserID)
	require.Equal(t, testJWT.Issuer, claims.Issuer)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signed, err := MintAccessToken(config.JWTConfig{Secret: testJWT.Secret, Issuer: "someone-else"}, time.Now(), "user-42", time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWT, signed)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	t.Parallel()

	signed, err := MintAccessToken(testJWT, time.Now().Add(-2*time.Hour), "user-42", time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(testJWT, signed)
	require.Error(t, err)
}

func TestMintRequiresIdentity(t *testing.T) {
	t.Parallel()

	_, err := MintAccessToken(testJWT, time.Now(), "", time.Hour)
	require.Error(t, err)
}
