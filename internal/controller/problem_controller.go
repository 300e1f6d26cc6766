package controller

import (
	"errors"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProblemController struct {
	ProblemService *service.ProblemService
}

func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{ProblemService: problemService}
}

// ListProblems godoc
// @Summary 获取题目列表
// @Description 支持按标签、难度和关键字过滤
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   tag query string false "标签名"
// @Param   difficulty query int false "难度 1-5"
// @Param   search query string false "标题/描述关键字"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/problems [get]
func (c *ProblemController) ListProblems(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	difficulty, _ := strconv.Atoi(ctx.DefaultQuery("difficulty", "0"))

	filter := repository.ProblemFilter{
		Tag:        ctx.Query("tag"),
		Difficulty: difficulty,
		Search:     ctx.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	problems, total, err := c.ProblemService.ListProblems(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  problems,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetProblem godoc
// @Summary 获取题目详情
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Problem}
// @Failure 404 {object} util.Response
// @Router /api/problems/{id} [get]
func (c *ProblemController) GetProblem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid problem id")
		return
	}

	problem, err := c.ProblemService.GetProblem(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, problem)
}

// CreateProblem godoc
// @Summary 创建题目
// @Description 连同选项和标签一起创建，至少两个选项
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateProblemRequest true "题目内容"
// @Success 201 {object} util.Response{data=model.Problem}
// @Failure 400 {object} util.Response
// @Router /api/problems [post]
func (c *ProblemController) CreateProblem(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateProblemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.ProblemService.CreateProblem(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, problem)
}

// UpdateProblem godoc
// @Summary 更新题目
// @Description 仅创建者或管理员可以更新
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body service.UpdateProblemRequest true "更新字段"
// @Success 200 {object} util.Response{data=model.Problem}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/problems/{id} [put]
func (c *ProblemController) UpdateProblem(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid problem id")
		return
	}

	var req service.UpdateProblemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.ProblemService.UpdateProblem(uint(id), user, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProblemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, problem)
}

// DeleteProblem godoc
// @Summary 删除题目
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/problems/{id} [delete]
func (c *ProblemController) DeleteProblem(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid problem id")
		return
	}

	if err := c.ProblemService.DeleteProblem(uint(id), user); err != nil {
		switch {
		case errors.Is(err, util.ErrProblemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// AddChoice godoc
// @Summary 向题目追加选项
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body service.ChoiceInput true "选项内容"
// @Success 201 {object} util.Response{data=model.Choice}
// @Router /api/problems/{id}/choices [post]
func (c *ProblemController) AddChoice(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid problem id")
		return
	}

	var input service.ChoiceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	choice, err := c.ProblemService.AddChoice(uint(id), user, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProblemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, choice)
}

// UpdateChoice godoc
// @Summary 更新选项
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "选项ID"
// @Param   body body service.UpdateChoiceRequest true "更新字段"
// @Success 200 {object} util.Response{data=model.Choice}
// @Router /api/choices/{id} [put]
func (c *ProblemController) UpdateChoice(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid choice id")
		return
	}

	var req service.UpdateChoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	choice, err := c.ProblemService.UpdateChoice(uint(id), user, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChoiceNotFound), errors.Is(err, util.ErrProblemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, choice)
}

// DeleteChoice godoc
// @Summary 删除选项
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "选项ID"
// @Success 200 {object} util.Response
// @Router /api/choices/{id} [delete]
func (c *ProblemController) DeleteChoice(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid choice id")
		return
	}

	if err := c.ProblemService.DeleteChoice(uint(id), user); err != nil {
		switch {
		case errors.Is(err, util.ErrChoiceNotFound), errors.Is(err, util.ErrProblemNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// GetProblemStats godoc
// @Summary 获取题目回答统计
// @Description 各选项的被选次数与比率，仅教师和管理员可见
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.ProblemStats}
// @Failure 404 {object} util.Response
// @Router /api/teacher/problems/{id}/stats [get]
func (c *ProblemController) GetProblemStats(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid problem id")
		return
	}

	stats, err := c.ProblemService.GetProblemStats(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrProblemNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, stats)
}
