package authutils

import (
	"ptw-backend/config"
	"ptw-backend/models"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.JWTRefreshExpireInSec = 120
}

func TestTokens(t *testing.T) {
	initTestConfig()

	t.Run(`access token carries role and department`, func(t *testing.T) {
		tokenString, err := GetToken("user-1", "Ivan Issuer", "ASM", models.RoleIssuer)
		require.Nil(t, err)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.Nil(t, err)
		claims := token.Claims.(jwt.MapClaims)
		require.Equal(t, "user-1", claims["sub"])
		require.Equal(t, "ISS", claims["role"])
		require.Equal(t, "ASM", claims["department"])
	})

	t.Run(`refresh token round trip`, func(t *testing.T) {
		tokenString, err := GetRefreshToken("user-1", "Ivan Issuer")
		require.Nil(t, err)
		userID, err := ParseRefreshToken(tokenString)
		require.Nil(t, err)
		require.Equal(t, "user-1", userID)
	})

	t.Run(`access token is not a refresh token`, func(t *testing.T) {
		tokenString, err := GetToken("user-1", "Ivan Issuer", "ASM", models.RoleIssuer)
		require.Nil(t, err)
		_, err = ParseRefreshToken(tokenString)
		require.NotNil(t, err)
	})

	t.Run(`password hash`, func(t *testing.T) {
		hash, err := HashPassword("s3cret-pass")
		require.Nil(t, err)
		require.True(t, CheckPassword(hash, "s3cret-pass"))
		require.False(t, CheckPassword(hash, "other-pass"))
	})
}
