package model

// UserAnswer 用户回答记录，提交后不可变更
// is_correct 在提交时由选项的正误标志确定，之后不再重算
// swagger:model UserAnswer
type UserAnswer struct {
	BaseModel
	UserID           uint `gorm:"index:idx_user_answer_user_problem;not null" json:"user_id"`
	ProblemID        uint `gorm:"index:idx_user_answer_user_problem;not null" json:"problem_id"`
	SelectedChoiceID uint `gorm:"index;not null" json:"selected_choice_id"`
	IsCorrect        bool `gorm:"not null" json:"is_correct"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
