package model

// Problem 数学题目，选项和标签随题目级联删除
// swagger:model Problem
type Problem struct {
	BaseModel
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ProblemText string       `gorm:"type:text;not null" json:"problem_text"`
	Difficulty  int          `gorm:"default:3" json:"difficulty"`
	CreatedBy   uint         `gorm:"index;not null" json:"created_by"`
	Choices     []Choice     `gorm:"constraint:OnDelete:CASCADE" json:"choices,omitempty"`
	Tags        []ProblemTag `gorm:"constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

func (Problem) TableName() string {
	return "problems"
}

// Choice 题目的选项，归属于唯一一个题目
// swagger:model Choice
type Choice struct {
	BaseModel
	ProblemID uint   `gorm:"index;not null" json:"problem_id"`
	Text      string `gorm:"type:text;not null" json:"text"`
	IsCorrect bool   `gorm:"not null;default:false" json:"is_correct"`
}

func (Choice) TableName() string {
	return "choices"
}

// Tag 题目分类标签
// swagger:model Tag
type Tag struct {
	BaseModel
	Name        string `gorm:"size:50;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   uint   `gorm:"not null" json:"created_by"`
}

func (Tag) TableName() string {
	return "tags"
}

// ProblemTag 题目与标签的多对多关联
type ProblemTag struct {
	BaseModel
	ProblemID uint `gorm:"index:idx_problem_tag,unique;not null" json:"problem_id"`
	TagID     uint `gorm:"index:idx_problem_tag,unique;not null" json:"tag_id"`
	Tag       *Tag `json:"tag,omitempty"`
}

func (ProblemTag) TableName() string {
	return "problem_tags"
}
