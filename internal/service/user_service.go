package service

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ListUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit)
}

func (s *UserService) SetDisabled(id uint, disabled bool) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(id, disabled)
}

// GetProfile 获取用户资料，不存在时返回空资料而不是错误
func (s *UserService) GetProfile(userID uint) (*model.UserProfile, error) {
	profile, err := s.UserRepo.FindProfileByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.UserProfile{UserID: userID}, nil
	}
	return profile, err
}

type UpdateProfileRequest struct {
	FullName     *string `json:"full_name"`
	Bio          *string `json:"bio"`
	Organization *string `json:"organization"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.UserProfile, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
		if err := s.UserRepo.DB.Save(user).Error; err != nil {
			return nil, err
		}
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Organization != nil {
		profile.Organization = *req.Organization
	}

	if err := s.UserRepo.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) (*model.UserProfile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = avatarURL
	if err := s.UserRepo.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
