package service

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), newTestConfig())

	user := &model.User{
		FullName: "张三",
		Email:    "zhangsan@example.com",
		Password: "secret123",
		Role:     model.Student,
	}
	require.NoError(t, svc.Register(user))

	// 密码已散列存储
	var stored model.User
	require.NoError(t, db.Where("email = ?", "zhangsan@example.com").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	t.Run("重复邮箱被拒绝", func(t *testing.T) {
		dup := &model.User{
			FullName: "李四",
			Email:    "zhangsan@example.com",
			Password: "another",
			Role:     model.Student,
		}
		assert.ErrorIs(t, svc.Register(dup), util.ErrEmailRegistered)
	})
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), newTestConfig())

	user := &model.User{
		FullName: "王五",
		Email:    "wangwu@example.com",
		Password: "secret123",
		Role:     model.Teacher,
	}
	require.NoError(t, svc.Register(user))

	t.Run("登录成功返回有效令牌", func(t *testing.T) {
		token, err := svc.Login("wangwu@example.com", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := util.ParseJWT(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, model.Teacher, claims.Role)
		assert.Equal(t, "wangwu@example.com", claims.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login("wangwu@example.com", "wrong")
		assert.Error(t, err)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "secret123")
		assert.Error(t, err)
	})

	t.Run("停用账号无法登录", func(t *testing.T) {
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
			Update("disabled", true).Error)
		_, err := svc.Login("wangwu@example.com", "secret123")
		assert.ErrorIs(t, err, util.ErrUserDisabled)
	})
}
