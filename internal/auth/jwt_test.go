package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key")

	token, err := svc.CreateJWTToken("p1", "Alice Seeker", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)

	claims, err := svc.FetchJWTToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "p1", claims.ProfileID)
	assert.Equal(t, "Alice Seeker", claims.Name)
}

func TestFetchRejectsWrongKey(t *testing.T) {
	token, err := NewService("key-one").CreateJWTToken("p1", "Alice", time.Hour)
	require.NoError(t, err)

	_, err = NewService("key-two").FetchJWTToken(token.Value)
	assert.Error(t, err)
}

func TestFetchRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key")

	token, err := svc.CreateJWTToken("p1", "Alice", -time.Minute)
	require.NoError(t, err)

	_, err = svc.FetchJWTToken(token.Value)
	assert.Error(t, err)
}

func TestFetchRejectsGarbage(t *testing.T) {
	_, err := NewService("test-signing-key").FetchJWTToken("not-a-token")
	assert.Error(t, err)
}
