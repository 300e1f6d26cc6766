package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

// ProgressRepository 处理用户学习进度的数据库操作
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByUserAndProblem 获取指定用户在指定题目上的进度，db 可为事务句柄
func (r *ProgressRepository) FindByUserAndProblem(db *gorm.DB, userID, problemID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := db.Where("user_id = ? AND problem_id = ?", userID, problemID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Create 创建进度行，(user_id, problem_id) 唯一索引冲突时返回 gorm.ErrDuplicatedKey
func (r *ProgressRepository) Create(db *gorm.DB, progress *model.UserProgress) error {
	return db.Create(progress).Error
}

// UpdateChecked 带前置计数检查的更新，attempts 不匹配时返回 0 行
// 调用方据此识别并发冲突
func (r *ProgressRepository) UpdateChecked(db *gorm.DB, progress *model.UserProgress, prevAttempts int) (int64, error) {
	result := db.Model(&model.UserProgress{}).
		Where("user_id = ? AND problem_id = ? AND attempts = ?",
			progress.UserID, progress.ProblemID, prevAttempts).
		Updates(map[string]interface{}{
			"attempts":        progress.Attempts,
			"mastery_level":   progress.MasteryLevel,
			"last_attempt_at": progress.LastAttemptAt,
		})
	return result.RowsAffected, result.Error
}

// ListByUser 获取用户的全部进度，problemID 为 0 时不过滤
func (r *ProgressRepository) ListByUser(userID, problemID uint) ([]model.UserProgress, error) {
	query := r.DB.Where("user_id = ?", userID)
	if problemID > 0 {
		query = query.Where("problem_id = ?", problemID)
	}

	var progress []model.UserProgress
	err := query.Order("last_attempt_at DESC").Find(&progress).Error
	return progress, err
}

// CountAttempted 用户挑战过的题目数
func (r *ProgressRepository) CountAttempted(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountMastered 熟练度达到阈值的题目数
func (r *ProgressRepository) CountMastered(userID uint, threshold float64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND mastery_level >= ?", userID, threshold).
		Count(&count).Error
	return count, err
}
