package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

// AnswerRepository 处理回答记录（只追加，不更新不删除）
type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Create 追加一条回答记录，db 为调用方持有的事务句柄
func (r *AnswerRepository) Create(db *gorm.DB, answer *model.UserAnswer) error {
	return db.Create(answer).Error
}

// ListByUser 按时间倒序获取用户的回答历史，problemID 为 0 时不过滤
func (r *AnswerRepository) ListByUser(userID, problemID uint, limit int) ([]model.UserAnswer, error) {
	query := r.DB.Where("user_id = ?", userID)
	if problemID > 0 {
		query = query.Where("problem_id = ?", problemID)
	}

	var answers []model.UserAnswer
	err := query.Order("created_at DESC").Limit(limit).Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AnswerRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *AnswerRepository) CountByProblem(problemID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).Where("problem_id = ?", problemID).Count(&count).Error
	return count, err
}

func (r *AnswerRepository) CountCorrectByProblem(problemID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("problem_id = ? AND is_correct = ?", problemID, true).
		Count(&count).Error
	return count, err
}

func (r *AnswerRepository) CountByChoice(choiceID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("selected_choice_id = ?", choiceID).
		Count(&count).Error
	return count, err
}
