package model

// UserStats 用户学习统计
// swagger:model UserStats
type UserStats struct {
	TotalProblems     int64   `json:"total_problems"`
	AttemptedProblems int64   `json:"attempted_problems"`
	MasteredProblems  int64   `json:"mastered_problems"`
	CompletionRate    float64 `json:"completion_rate"`
	MasteryRate       float64 `json:"mastery_rate"`
	TotalAnswers      int64   `json:"total_answers"`
	CorrectAnswers    int64   `json:"correct_answers"`
	CorrectRate       float64 `json:"correct_rate"`
}

// ChoiceStat 单个选项的被选情况
// swagger:model ChoiceStat
type ChoiceStat struct {
	ID        uint    `json:"id"`
	Text      string  `json:"text"`
	IsCorrect bool    `json:"is_correct"`
	Count     int64   `json:"count"`
	Rate      float64 `json:"rate"`
}

// ProblemStats 单个题目的回答统计
// swagger:model ProblemStats
type ProblemStats struct {
	TotalAnswers   int64        `json:"total_answers"`
	CorrectAnswers int64        `json:"correct_answers"`
	CorrectRate    float64      `json:"correct_rate"`
	ChoiceStats    []ChoiceStat `json:"choice_stats"`
}
