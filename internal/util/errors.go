package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrUserDisabled        = errors.New("账号已被禁用")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrProblemNotFound     = errors.New("problem not found")
	ErrChoiceNotFound      = errors.New("choice not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrTagExists           = errors.New("标签已存在")
	ErrInvalidChoice       = errors.New("invalid choice for this problem")
	ErrConcurrencyConflict = errors.New("concurrent submission conflict")
)
