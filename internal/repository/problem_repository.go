package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

// ProblemRepository 处理题目与选项的数据库操作
type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

func (r *ProblemRepository) FindByID(id uint) (*model.Problem, error) {
	var problem model.Problem
	err := r.DB.Preload("Choices").Preload("Tags.Tag").First(&problem, id).Error
	if err != nil {
		return nil, err
	}
	return &problem, nil
}

// ProblemFilter 列表查询条件
type ProblemFilter struct {
	Tag        string
	Difficulty int
	Search     string
	Page       int
	Limit      int
}

// List 按标签/难度/关键字过滤并分页
func (r *ProblemRepository) List(filter ProblemFilter) ([]model.Problem, int64, error) {
	query := r.DB.Model(&model.Problem{})

	if filter.Tag != "" {
		query = query.Joins("JOIN problem_tags ON problem_tags.problem_id = problems.id").
			Joins("JOIN tags ON tags.id = problem_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
	}

	if filter.Difficulty > 0 {
		query = query.Where("problems.difficulty = ?", filter.Difficulty)
	}

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("problems.title LIKE ? OR problems.description LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var problems []model.Problem
	err := query.Preload("Choices").Preload("Tags.Tag").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&problems).Error
	return problems, total, err
}

func (r *ProblemRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Problem{}).Count(&count).Error
	return count, err
}

func (r *ProblemRepository) Create(db *gorm.DB, problem *model.Problem) error {
	return db.Create(problem).Error
}

func (r *ProblemRepository) Update(problem *model.Problem) error {
	return r.DB.Save(problem).Error
}

// Delete 删除题目及其关联的选项、标签关联、回答和进度
func (r *ProblemRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("problem_id = ?", id).Delete(&model.ProblemTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("problem_id = ?", id).Delete(&model.UserAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("problem_id = ?", id).Delete(&model.UserProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Problem{}, id).Error
	})
}

func (r *ProblemRepository) FindChoiceByID(id uint) (*model.Choice, error) {
	var choice model.Choice
	err := r.DB.First(&choice, id).Error
	if err != nil {
		return nil, err
	}
	return &choice, nil
}

func (r *ProblemRepository) FindChoicesByProblem(problemID uint) ([]model.Choice, error) {
	var choices []model.Choice
	err := r.DB.Where("problem_id = ?", problemID).Order("id").Find(&choices).Error
	return choices, err
}

func (r *ProblemRepository) CreateChoice(choice *model.Choice) error {
	return r.DB.Create(choice).Error
}

func (r *ProblemRepository) UpdateChoice(choice *model.Choice) error {
	return r.DB.Save(choice).Error
}

func (r *ProblemRepository) DeleteChoice(id uint) error {
	return r.DB.Delete(&model.Choice{}, id).Error
}
