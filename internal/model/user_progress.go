package model

import "time"

// UserProgress 用户对单个题目的学习进度聚合
// (user_id, problem_id) 全局唯一，首次提交时惰性创建
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID        uint      `gorm:"index:idx_user_progress_user_problem,unique;not null" json:"user_id"`
	ProblemID     uint      `gorm:"index:idx_user_progress_user_problem,unique;not null" json:"problem_id"`
	Attempts      int       `gorm:"not null;default:0" json:"attempts"`
	MasteryLevel  float64   `gorm:"type:double;default:0" json:"mastery_level"` // 熟练度 0.0 - 1.0
	LastAttemptAt time.Time `json:"last_attempt_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
