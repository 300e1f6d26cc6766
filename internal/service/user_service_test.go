package service

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	user := seedUser(t, db, "user@example.com", model.Student)

	t.Run("按ID获取", func(t *testing.T) {
		got, err := svc.GetUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)

		_, err = svc.GetUser(99999)
		assert.ErrorIs(t, err, util.ErrUserNotFound)
	})

	t.Run("停用与恢复", func(t *testing.T) {
		require.NoError(t, svc.SetDisabled(user.ID, true))
		got, err := svc.GetUser(user.ID)
		require.NoError(t, err)
		assert.True(t, got.Disabled)

		require.NoError(t, svc.SetDisabled(user.ID, false))
		got, err = svc.GetUser(user.ID)
		require.NoError(t, err)
		assert.False(t, got.Disabled)

		assert.ErrorIs(t, svc.SetDisabled(99999, true), util.ErrUserNotFound)
	})

	t.Run("资料不存在时返回空资料", func(t *testing.T) {
		profile, err := svc.GetProfile(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, profile.UserID)
		assert.Empty(t, profile.Bio)
	})

	t.Run("更新资料", func(t *testing.T) {
		bio := "热爱数学"
		org := "第一中学"
		name := "新名字"
		profile, err := svc.UpdateProfile(user.ID, UpdateProfileRequest{
			FullName:     &name,
			Bio:          &bio,
			Organization: &org,
		})
		require.NoError(t, err)
		assert.Equal(t, bio, profile.Bio)
		assert.Equal(t, org, profile.Organization)

		got, err := svc.GetUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, name, got.FullName)
	})

	t.Run("更新头像", func(t *testing.T) {
		profile, err := svc.UpdateAvatar(user.ID, "/uploads/avatars/u1.png")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/avatars/u1.png", profile.AvatarURL)
	})

	t.Run("分页列表", func(t *testing.T) {
		seedUser(t, db, "second@example.com", model.Teacher)
		users, total, err := svc.ListUsers(1, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, users, 1)
	})
}

func TestTagService(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))

	admin := seedUser(t, db, "admin@example.com", model.Admin)

	tag, err := svc.CreateTag(admin.ID, CreateTagRequest{Name: "数论", Description: "整除、同余与素数"})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, tag.CreatedBy)

	tags, err := svc.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "数论", tags[0].Name)

	t.Run("重名标签被拒绝", func(t *testing.T) {
		_, err := svc.CreateTag(admin.ID, CreateTagRequest{Name: "数论"})
		assert.ErrorIs(t, err, util.ErrTagExists)
	})

	t.Run("删除标签", func(t *testing.T) {
		require.NoError(t, svc.DeleteTag(tag.ID))
		assert.ErrorIs(t, svc.DeleteTag(tag.ID), util.ErrTagNotFound)
	})
}
