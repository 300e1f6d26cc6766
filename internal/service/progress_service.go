package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/logger"
	"math_edu_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 熟练度更新步长：答对奖励快于答错惩罚
	MasteryGain    = 0.2
	MasteryPenalty = 0.1
	// 熟练度达到该阈值视为已掌握
	MasteryThreshold = 0.8

	// 并发冲突时整个提交事务的最大重试次数
	submitMaxAttempts = 3

	statsCacheTTL = 30 * time.Second
)

// ProgressService 负责回答提交、进度更新与统计计算
type ProgressService struct {
	AnswerRepo   *repository.AnswerRepository
	ProgressRepo *repository.ProgressRepository
	ProblemRepo  *repository.ProblemRepository
	Redis        *redis.Client
	DB           *gorm.DB
}

func NewProgressService(
	answerRepo *repository.AnswerRepository,
	progressRepo *repository.ProgressRepository,
	problemRepo *repository.ProblemRepository,
	rdb *redis.Client,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		AnswerRepo:   answerRepo,
		ProgressRepo: progressRepo,
		ProblemRepo:  problemRepo,
		Redis:        rdb,
		DB:           db,
	}
}

// NextMasteryLevel 计算下一个熟练度：答对 +0.2 封顶 1.0，答错 -0.1 保底 0.0
func NextMasteryLevel(current float64, correct bool) float64 {
	if correct {
		return math.Min(1.0, current+MasteryGain)
	}
	return math.Max(0.0, current-MasteryPenalty)
}

func initialMasteryLevel(correct bool) float64 {
	if correct {
		return 1.0
	}
	return 0.0
}

type SubmitAnswerRequest struct {
	ProblemID        uint `json:"problem_id" binding:"required"`
	SelectedChoiceID uint `json:"selected_choice_id" binding:"required"`
}

// SubmitAnswer 提交回答：校验选项归属、追加回答记录、更新进度
// 记录写入和进度更新在同一事务内完成，进度行的并发冲突会整体重试
func (s *ProgressService) SubmitAnswer(userID uint, req SubmitAnswerRequest) (*model.UserAnswer, error) {
	var answer *model.UserAnswer
	var err error

	for attempt := 1; attempt <= submitMaxAttempts; attempt++ {
		answer, err = s.trySubmit(userID, req)
		if !errors.Is(err, util.ErrConcurrencyConflict) {
			break
		}
		logger.Log.Warn("submit conflict, retrying",
			zap.Uint("userId", userID),
			zap.Uint("problemId", req.ProblemID),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		return nil, err
	}

	if answer.IsCorrect {
		monitoring.AnswerSubmissions.WithLabelValues("correct").Inc()
	} else {
		monitoring.AnswerSubmissions.WithLabelValues("incorrect").Inc()
	}

	s.invalidateStatsCache(userID)
	return answer, nil
}

func (s *ProgressService) trySubmit(userID uint, req SubmitAnswerRequest) (*model.UserAnswer, error) {
	var answer *model.UserAnswer

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var choice model.Choice
		if err := tx.First(&choice, req.SelectedChoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrChoiceNotFound
			}
			return err
		}
		if choice.ProblemID != req.ProblemID {
			return util.ErrInvalidChoice
		}

		now := time.Now()

		// is_correct 在此刻由选项的标志确定，之后不再改变
		a := &model.UserAnswer{
			UserID:           userID,
			ProblemID:        req.ProblemID,
			SelectedChoiceID: choice.ID,
			IsCorrect:        choice.IsCorrect,
		}
		if err := s.AnswerRepo.Create(tx, a); err != nil {
			return err
		}

		progress, err := s.ProgressRepo.FindByUserAndProblem(tx, userID, req.ProblemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 首次提交，惰性创建进度行
			p := &model.UserProgress{
				UserID:        userID,
				ProblemID:     req.ProblemID,
				Attempts:      1,
				MasteryLevel:  initialMasteryLevel(choice.IsCorrect),
				LastAttemptAt: now,
			}
			if err := s.ProgressRepo.Create(tx, p); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return util.ErrConcurrencyConflict
				}
				return err
			}
		} else if err != nil {
			return err
		} else {
			prev := progress.Attempts
			progress.Attempts++
			progress.LastAttemptAt = now
			progress.MasteryLevel = NextMasteryLevel(progress.MasteryLevel, choice.IsCorrect)

			rows, err := s.ProgressRepo.UpdateChecked(tx, progress, prev)
			if err != nil {
				return err
			}
			if rows == 0 {
				return util.ErrConcurrencyConflict
			}
		}

		answer = a
		return nil
	})

	if err != nil {
		return nil, err
	}
	return answer, nil
}

// GetUserProgress 获取用户的学习进度，problemID 为 0 时返回全部
func (s *ProgressService) GetUserProgress(userID, problemID uint) ([]model.UserProgress, error) {
	return s.ProgressRepo.ListByUser(userID, problemID)
}

// GetUserAnswers 按时间倒序获取用户的回答历史
func (s *ProgressService) GetUserAnswers(userID, problemID uint, limit int) ([]model.UserAnswer, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.AnswerRepo.ListByUser(userID, problemID, limit)
}

// GetUserStats 计算用户统计信息，结果短暂缓存于 Redis
func (s *ProgressService) GetUserStats(userID uint) (*model.UserStats, error) {
	cacheKey := fmt.Sprintf("stats:user:%d", userID)

	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var stats model.UserStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeUserStats(userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.Redis.Set(context.Background(), cacheKey, data, statsCacheTTL)
		}
	}

	return stats, nil
}

func (s *ProgressService) computeUserStats(userID uint) (*model.UserStats, error) {
	totalProblems, err := s.ProblemRepo.Count()
	if err != nil {
		return nil, err
	}

	attempted, err := s.ProgressRepo.CountAttempted(userID)
	if err != nil {
		return nil, err
	}

	mastered, err := s.ProgressRepo.CountMastered(userID, MasteryThreshold)
	if err != nil {
		return nil, err
	}

	totalAnswers, err := s.AnswerRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	correctAnswers, err := s.AnswerRepo.CountCorrectByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &model.UserStats{
		TotalProblems:     totalProblems,
		AttemptedProblems: attempted,
		MasteredProblems:  mastered,
		TotalAnswers:      totalAnswers,
		CorrectAnswers:    correctAnswers,
	}

	// 分母为 0 时各比率保持 0
	if totalProblems > 0 {
		stats.CompletionRate = float64(attempted) / float64(totalProblems)
		stats.MasteryRate = float64(mastered) / float64(totalProblems)
	}
	if totalAnswers > 0 {
		stats.CorrectRate = float64(correctAnswers) / float64(totalAnswers)
	}

	return stats, nil
}

func (s *ProgressService) invalidateStatsCache(userID uint) {
	if s.Redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("stats:user:%d", userID)
	if err := s.Redis.Del(context.Background(), cacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate stats cache", zap.Uint("userId", userID), zap.Error(err))
	}
}
