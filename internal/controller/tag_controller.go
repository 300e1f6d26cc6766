package controller

import (
	"errors"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	TagService *service.TagService
}

func NewTagController(tagService *service.TagService) *TagController {
	return &TagController{TagService: tagService}
}

// ListTags godoc
// @Summary 获取标签列表
// @Tags 标签
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Tag}
// @Router /api/tags [get]
func (c *TagController) ListTags(ctx *gin.Context) {
	tags, err := c.TagService.ListTags()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}

// CreateTag godoc
// @Summary 创建标签
// @Tags 标签
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateTagRequest true "标签内容"
// @Success 201 {object} util.Response{data=model.Tag}
// @Failure 409 {object} util.Response "标签已存在"
// @Router /api/tags [post]
func (c *TagController) CreateTag(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tag, err := c.TagService.CreateTag(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrTagExists) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, tag)
}

// DeleteTag godoc
// @Summary 删除标签
// @Tags 标签
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "标签ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tags/{id} [delete]
func (c *TagController) DeleteTag(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid tag id")
		return
	}

	if err := c.TagService.DeleteTag(uint(id)); err != nil {
		if errors.Is(err, util.ErrTagNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
