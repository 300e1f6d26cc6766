package service

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProblem(t *testing.T) {
	db := newTestDB(t)
	svc := newProblemService(db)

	teacher := seedUser(t, db, "teacher@example.com", model.Teacher)

	problem, err := svc.CreateProblem(teacher.ID, CreateProblemRequest{
		Title:       "二次方程求根",
		ProblemText: "方程 x^2 - 5x + 6 = 0 的根是？",
		Difficulty:  4,
		Choices: []ChoiceInput{
			{Text: "x = 2 或 x = 3", IsCorrect: true},
			{Text: "x = 1 或 x = 6", IsCorrect: false},
			{Text: "x = -2 或 x = -3", IsCorrect: false},
		},
		Tags: []string{"代数与方程", "因式分解"},
	})
	require.NoError(t, err)

	assert.Equal(t, teacher.ID, problem.CreatedBy)
	assert.Equal(t, 4, problem.Difficulty)
	assert.Len(t, problem.Choices, 3)
	assert.Len(t, problem.Tags, 2)

	t.Run("难度缺省为3", func(t *testing.T) {
		p, err := svc.CreateProblem(teacher.ID, CreateProblemRequest{
			Title:       "简单加法",
			ProblemText: "1 + 1 = ?",
			Choices: []ChoiceInput{
				{Text: "2", IsCorrect: true},
				{Text: "3", IsCorrect: false},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, p.Difficulty)
	})

	t.Run("同名标签复用不重建", func(t *testing.T) {
		p, err := svc.CreateProblem(teacher.ID, CreateProblemRequest{
			Title:       "因式分解练习",
			ProblemText: "分解 x^2 - 4",
			Choices: []ChoiceInput{
				{Text: "(x-2)(x+2)", IsCorrect: true},
				{Text: "(x-4)(x+1)", IsCorrect: false},
			},
			Tags: []string{"因式分解"},
		})
		require.NoError(t, err)
		require.Len(t, p.Tags, 1)

		var count int64
		require.NoError(t, db.Model(&model.Tag{}).Where("name = ?", "因式分解").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func TestGetProblem_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newProblemService(db)

	_, err := svc.GetProblem(12345)
	assert.ErrorIs(t, err, util.ErrProblemNotFound)
}

func TestListProblems(t *testing.T) {
	db := newTestDB(t)
	svc := newProblemService(db)

	teacher := seedUser(t, db, "teacher@example.com", model.Teacher)
	for i := 0; i < 5; i++ {
		seedProblem(t, db, teacher.ID)
	}

	problems, total, err := svc.ListProblems(repository.ProblemFilter{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, problems, 3)

	problems, total, err = svc.ListProblems(repository.ProblemFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, problems, 2)
}

func TestUpdateProblem_Permission(t *testing.T) {
	db := newTestDB(t)
	svc := newProblemService(db)

	owner := seedUser(t, db, "owner@example.com", model.Teacher)
	other := seedUser(t, db, "other@example.com", model.Teacher)
	admin := seedUser(t, db, "admin@example.com", model.Admin)
	problem, _, _ := seedProblem(t, db, owner.ID)

	newTitle := "更新后的标题"

	t.Run("非创建者教师被拒绝", func(t *testing.T) {
		_, err := svc.UpdateProblem(problem.ID, &util.Claims{UserID: other.ID, Role: model.Teacher},
			UpdateProblemRequest{Title: &newTitle})
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("创建者可以更新", func(t *testing.T) {
		updated, err := svc.UpdateProblem(problem.ID, &util.Claims{UserID: owner.ID, Role: model.Teacher},
			UpdateProblemRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("管理员可以更新任意题目", func(t *testing.T) {
		adminTitle := "管理员修改"
		updated, err := svc.UpdateProblem(problem.ID, &util.Claims{UserID: admin.ID, Role: model.Admin},
			UpdateProblemRequest{Title: &adminTitle})
		require.NoError(t, err)
		assert.Equal(t, adminTitle, updated.Title)
	})
}

func TestDeleteProblem_Cascades(t *testing.T) {
	db := newTestDB(t)
	problemSvc := newProblemService(db)
	progressSvc := newProgressService(db)

	teacher := seedUser(t, db, "teacher@example.com", model.Teacher)
	student := seedUser(t, db, "student@example.com", model.Student)
	problem, correct, _ := seedProblem(t, db, teacher.ID)

	_, err := progressSvc.SubmitAnswer(student.ID, SubmitAnswerRequest{
		ProblemID:        problem.ID,
		SelectedChoiceID: correct.ID,
	})
	require.NoError(t, err)

	require.NoError(t, problemSvc.DeleteProblem(problem.ID, &util.Claims{UserID: teacher.ID, Role: model.Teacher}))

	_, err = problemSvc.GetProblem(problem.ID)
	assert.ErrorIs(t, err, util.ErrProblemNotFound)

	var choiceCount, answerCount, progressCount int64
	require.NoError(t, db.Model(&model.Choice{}).Where("problem_id = ?", problem.ID).Count(&choiceCount).Error)
	require.NoError(t, db.Model(&model.UserAnswer{}).Where("problem_id = ?", problem.ID).Count(&answerCount).Error)
	require.NoError(t, db.Model(&model.UserProgress{}).Where("problem_id = ?", problem.ID).Count(&progressCount).Error)
	assert.Zero(t, choiceCount)
	assert.Zero(t, answerCount)
	assert.Zero(t, progressCount)
}

func TestChoiceManagement(t *testing.T) {
	db := newTestDB(t)
	svc := newProblemService(db)

	owner := seedUser(t, db, "owner@example.com", model.Teacher)
	problem, _, wrong := seedProblem(t, db, owner.ID)
	actor := &util.Claims{UserID: owner.ID, Role: model.Teacher}

	added, err := svc.AddChoice(problem.ID, actor, ChoiceInput{Text: "第三个选项", IsCorrect: false})
	require.NoError(t, err)
	assert.Equal(t, problem.ID, added.ProblemID)

	newText := "修改后的选项"
	isCorrect := true
	updated, err := svc.UpdateChoice(wrong.ID, actor, UpdateChoiceRequest{Text: &newText, IsCorrect: &isCorrect})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)
	assert.True(t, updated.IsCorrect)

	require.NoError(t, svc.DeleteChoice(added.ID, actor))
	_, err = svc.UpdateChoice(added.ID, actor, UpdateChoiceRequest{Text: &newText})
	assert.ErrorIs(t, err, util.ErrChoiceNotFound)
}

func TestGetProblemStats(t *testing.T) {
	db := newTestDB(t)
	problemSvc := newProblemService(db)
	progressSvc := newProgressService(db)

	teacher := seedUser(t, db, "teacher@example.com", model.Teacher)
	problem, correct, wrong := seedProblem(t, db, teacher.ID)

	t.Run("无回答时比率为0", func(t *testing.T) {
		stats, err := problemSvc.GetProblemStats(problem.ID)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalAnswers)
		assert.Zero(t, stats.CorrectRate)
		require.Len(t, stats.ChoiceStats, 2)
		assert.Zero(t, stats.ChoiceStats[0].Rate)
	})

	// 10 名学生回答同一题：7 人选对，3 人选错
	for i := 0; i < 10; i++ {
		student := seedUser(t, db, string(rune('a'+i))+"@example.com", model.Student)
		choiceID := correct.ID
		if i >= 7 {
			choiceID = wrong.ID
		}
		_, err := progressSvc.SubmitAnswer(student.ID, SubmitAnswerRequest{
			ProblemID:        problem.ID,
			SelectedChoiceID: choiceID,
		})
		require.NoError(t, err)
	}

	stats, err := problemSvc.GetProblemStats(problem.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 10, stats.TotalAnswers)
	assert.EqualValues(t, 7, stats.CorrectAnswers)
	assert.InDelta(t, 0.7, stats.CorrectRate, 1e-9)

	require.Len(t, stats.ChoiceStats, 2)
	byID := map[uint]model.ChoiceStat{}
	for _, cs := range stats.ChoiceStats {
		byID[cs.ID] = cs
	}
	assert.EqualValues(t, 7, byID[correct.ID].Count)
	assert.InDelta(t, 0.7, byID[correct.ID].Rate, 1e-9)
	assert.EqualValues(t, 3, byID[wrong.ID].Count)
	assert.InDelta(t, 0.3, byID[wrong.ID].Rate, 1e-9)

	t.Run("题目不存在", func(t *testing.T) {
		_, err := problemSvc.GetProblemStats(99999)
		assert.ErrorIs(t, err, util.ErrProblemNotFound)
	})
}
