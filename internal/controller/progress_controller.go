package controller

import (
	"errors"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	ProblemService  *service.ProblemService
}

func NewProgressController(progressService *service.ProgressService, problemService *service.ProblemService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		ProblemService:  problemService,
	}
}

// SubmitAnswer godoc
// @Summary 提交回答
// @Description 记录回答并更新该题的学习进度，两者在同一事务内完成
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitAnswerRequest true "题目和所选选项"
// @Success 201 {object} util.Response{data=model.UserAnswer}
// @Failure 400 {object} util.Response "选项不属于该题目"
// @Failure 404 {object} util.Response "题目或选项不存在"
// @Failure 503 {object} util.Response "并发冲突重试耗尽"
// @Router /api/progress/submit [post]
func (c *ProgressController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 题目存在性在核心提交之前校验
	if _, err := c.ProblemService.GetProblem(req.ProblemID); err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	answer, err := c.ProgressService.SubmitAnswer(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChoiceNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidChoice):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrConcurrencyConflict):
			util.Error(ctx, 503, "submission conflict, please retry")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, answer)
}

// GetProgress godoc
// @Summary 获取学习进度
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   problem_id query int false "仅返回指定题目的进度"
// @Success 200 {object} util.Response{data=[]model.UserProgress}
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	problemID, _ := strconv.Atoi(ctx.DefaultQuery("problem_id", "0"))

	progress, err := c.ProgressService.GetUserProgress(user.UserID, uint(problemID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// GetAnswers godoc
// @Summary 获取回答历史
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   problem_id query int false "仅返回指定题目的回答"
// @Param   limit query int false "返回条数，默认10"
// @Success 200 {object} util.Response{data=[]model.UserAnswer}
// @Router /api/progress/answers [get]
func (c *ProgressController) GetAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	problemID, _ := strconv.Atoi(ctx.DefaultQuery("problem_id", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	answers, err := c.ProgressService.GetUserAnswers(user.UserID, uint(problemID), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// GetStats godoc
// @Summary 获取用户统计信息
// @Description 已做题目数、已掌握题目数、完成率、正确率等
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserStats}
// @Router /api/progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ProgressService.GetUserStats(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
