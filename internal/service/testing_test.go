package service

import (
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/pkg/database"
	"math_edu_backend/pkg/logger"
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewAnswerRepository(db),
		repository.NewProgressRepository(db),
		repository.NewProblemRepository(db),
		nil,
		db,
	)
}

func newProblemService(db *gorm.DB) *ProblemService {
	return NewProblemService(
		repository.NewProblemRepository(db),
		repository.NewTagRepository(db),
		repository.NewAnswerRepository(db),
		db,
	)
}

// seedProblem 创建一个带一个正确选项和一个错误选项的题目
func seedProblem(t *testing.T, db *gorm.DB, creatorID uint) (*model.Problem, *model.Choice, *model.Choice) {
	t.Helper()

	problem := &model.Problem{
		Title:       "一次方程",
		ProblemText: "已知 2x + 3 = 7，求 x 的值",
		Difficulty:  2,
		CreatedBy:   creatorID,
	}
	require.NoError(t, db.Create(problem).Error)

	correct := &model.Choice{ProblemID: problem.ID, Text: "2", IsCorrect: true}
	wrong := &model.Choice{ProblemID: problem.ID, Text: "3", IsCorrect: false}
	require.NoError(t, db.Create(correct).Error)
	require.NoError(t, db.Create(wrong).Error)

	return problem, correct, wrong
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		FullName: "测试用户",
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
