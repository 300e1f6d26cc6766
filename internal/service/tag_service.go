package service

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"

	"gorm.io/gorm"
)

type TagService struct {
	TagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{TagRepo: tagRepo}
}

func (s *TagService) ListTags() ([]model.Tag, error) {
	return s.TagRepo.List()
}

type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
}

func (s *TagService) CreateTag(creatorID uint, req CreateTagRequest) (*model.Tag, error) {
	_, err := s.TagRepo.FindByName(req.Name)
	if err == nil {
		return nil, util.ErrTagExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &model.Tag{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	if err := s.TagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) DeleteTag(id uint) error {
	if _, err := s.TagRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTagNotFound
		}
		return err
	}
	return s.TagRepo.Delete(id)
}
