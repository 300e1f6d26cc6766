package service

import (
	"errors"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"

	"gorm.io/gorm"
)

// ProblemService 题目与选项的管理，以及按题目的回答统计
type ProblemService struct {
	ProblemRepo *repository.ProblemRepository
	TagRepo     *repository.TagRepository
	AnswerRepo  *repository.AnswerRepository
	DB          *gorm.DB
}

func NewProblemService(
	problemRepo *repository.ProblemRepository,
	tagRepo *repository.TagRepository,
	answerRepo *repository.AnswerRepository,
	db *gorm.DB,
) *ProblemService {
	return &ProblemService{
		ProblemRepo: problemRepo,
		TagRepo:     tagRepo,
		AnswerRepo:  answerRepo,
		DB:          db,
	}
}

type ChoiceInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateProblemRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	ProblemText string        `json:"problem_text" binding:"required"`
	Difficulty  int           `json:"difficulty" binding:"omitempty,min=1,max=5"`
	Choices     []ChoiceInput `json:"choices" binding:"required,min=2,dive"`
	Tags        []string      `json:"tags"`
}

// CreateProblem 创建题目及其选项和标签，整体在一个事务内
func (s *ProblemService) CreateProblem(creatorID uint, req CreateProblemRequest) (*model.Problem, error) {
	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = 3
	}

	problem := &model.Problem{
		Title:       req.Title,
		Description: req.Description,
		ProblemText: req.ProblemText,
		Difficulty:  difficulty,
		CreatedBy:   creatorID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ProblemRepo.Create(tx, problem); err != nil {
			return err
		}

		for _, c := range req.Choices {
			choice := &model.Choice{
				ProblemID: problem.ID,
				Text:      c.Text,
				IsCorrect: c.IsCorrect,
			}
			if err := tx.Create(choice).Error; err != nil {
				return err
			}
		}

		for _, name := range req.Tags {
			tag, err := s.TagRepo.GetOrCreate(tx, name, creatorID)
			if err != nil {
				return err
			}
			link := &model.ProblemTag{ProblemID: problem.ID, TagID: tag.ID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ProblemRepo.FindByID(problem.ID)
}

func (s *ProblemService) GetProblem(id uint) (*model.Problem, error) {
	problem, err := s.ProblemRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProblemNotFound
	}
	return problem, err
}

func (s *ProblemService) ListProblems(filter repository.ProblemFilter) ([]model.Problem, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.ProblemRepo.List(filter)
}

type UpdateProblemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProblemText *string `json:"problem_text"`
	Difficulty  *int    `json:"difficulty" binding:"omitempty,min=1,max=5"`
}

// UpdateProblem 仅题目创建者或管理员可以修改
func (s *ProblemService) UpdateProblem(id uint, actor *util.Claims, req UpdateProblemRequest) (*model.Problem, error) {
	problem, err := s.GetProblem(id)
	if err != nil {
		return nil, err
	}

	if problem.CreatedBy != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		problem.Title = *req.Title
	}
	if req.Description != nil {
		problem.Description = *req.Description
	}
	if req.ProblemText != nil {
		problem.ProblemText = *req.ProblemText
	}
	if req.Difficulty != nil {
		problem.Difficulty = *req.Difficulty
	}

	problem.Choices = nil
	problem.Tags = nil
	if err := s.ProblemRepo.Update(problem); err != nil {
		return nil, err
	}
	return s.ProblemRepo.FindByID(id)
}

func (s *ProblemService) DeleteProblem(id uint, actor *util.Claims) error {
	problem, err := s.GetProblem(id)
	if err != nil {
		return err
	}
	if problem.CreatedBy != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.ProblemRepo.Delete(id)
}

// AddChoice 向题目追加选项
func (s *ProblemService) AddChoice(problemID uint, actor *util.Claims, input ChoiceInput) (*model.Choice, error) {
	problem, err := s.GetProblem(problemID)
	if err != nil {
		return nil, err
	}
	if problem.CreatedBy != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	choice := &model.Choice{
		ProblemID: problemID,
		Text:      input.Text,
		IsCorrect: input.IsCorrect,
	}
	if err := s.ProblemRepo.CreateChoice(choice); err != nil {
		return nil, err
	}
	return choice, nil
}

type UpdateChoiceRequest struct {
	Text      *string `json:"text"`
	IsCorrect *bool   `json:"is_correct"`
}

func (s *ProblemService) UpdateChoice(choiceID uint, actor *util.Claims, req UpdateChoiceRequest) (*model.Choice, error) {
	choice, err := s.ProblemRepo.FindChoiceByID(choiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrChoiceNotFound
	}
	if err != nil {
		return nil, err
	}

	problem, err := s.GetProblem(choice.ProblemID)
	if err != nil {
		return nil, err
	}
	if problem.CreatedBy != actor.UserID && actor.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	if req.Text != nil {
		choice.Text = *req.Text
	}
	if req.IsCorrect != nil {
		choice.IsCorrect = *req.IsCorrect
	}
	if err := s.ProblemRepo.UpdateChoice(choice); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *ProblemService) DeleteChoice(choiceID uint, actor *util.Claims) error {
	choice, err := s.ProblemRepo.FindChoiceByID(choiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrChoiceNotFound
	}
	if err != nil {
		return err
	}

	problem, err := s.GetProblem(choice.ProblemID)
	if err != nil {
		return err
	}
	if problem.CreatedBy != actor.UserID && actor.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.ProblemRepo.DeleteChoice(choiceID)
}

// GetProblemStats 按题目统计回答情况，含各选项的被选率
func (s *ProblemService) GetProblemStats(problemID uint) (*model.ProblemStats, error) {
	if _, err := s.GetProblem(problemID); err != nil {
		return nil, err
	}

	totalAnswers, err := s.AnswerRepo.CountByProblem(problemID)
	if err != nil {
		return nil, err
	}

	correctAnswers, err := s.AnswerRepo.CountCorrectByProblem(problemID)
	if err != nil {
		return nil, err
	}

	stats := &model.ProblemStats{
		TotalAnswers:   totalAnswers,
		CorrectAnswers: correctAnswers,
	}
	if totalAnswers > 0 {
		stats.CorrectRate = float64(correctAnswers) / float64(totalAnswers)
	}

	choices, err := s.ProblemRepo.FindChoicesByProblem(problemID)
	if err != nil {
		return nil, err
	}

	stats.ChoiceStats = make([]model.ChoiceStat, 0, len(choices))
	for _, choice := range choices {
		count, err := s.AnswerRepo.CountByChoice(choice.ID)
		if err != nil {
			return nil, err
		}

		cs := model.ChoiceStat{
			ID:        choice.ID,
			Text:      choice.Text,
			IsCorrect: choice.IsCorrect,
			Count:     count,
		}
		if totalAnswers > 0 {
			cs.Rate = float64(count) / float64(totalAnswers)
		}
		stats.ChoiceStats = append(stats.ChoiceStats, cs)
	}

	return stats, nil
}
