package util

import (
	"math_edu_backend/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		FullName: "测试用户",
		Email:    "jwt@example.com",
		Role:     model.Student,
	}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "jwt@example.com", claims.Email)

	t.Run("密钥不匹配", func(t *testing.T) {
		_, err := ParseJWT(token, "wrong-secret")
		assert.Error(t, err)
	})

	t.Run("过期令牌", func(t *testing.T) {
		expired, err := GenerateJWT(user, "secret", -time.Minute)
		require.NoError(t, err)
		_, err = ParseJWT(expired, "secret")
		assert.Error(t, err)
	})

	t.Run("拒绝非HS256签名", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 42})
		tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ParseJWT(tokenString, "secret")
		assert.Error(t, err)
	})
}
