package dto

import (
	"errors"
	"fmt"

	res "terminal-terrace/blog/pkg/response"

	"gorm.io/gorm"
)

// NotFoundError "Post with id = 7 not found"
func NotFoundError(kind string, id uint) *res.BusinessError {
	return res.NewBusinessError(
		res.WithErrorCode(res.NotFound),
		res.WithErrorMessage(fmt.Sprintf("%s with id = %d not found", kind, id)),
	)
}

func ConflictError(msg string) *res.BusinessError {
	return res.NewBusinessError(
		res.WithErrorCode(res.Conflict),
		res.WithErrorMessage(msg),
	)
}

func ValidationError(msg string) *res.BusinessError {
	return res.NewBusinessError(
		res.WithErrorCode(res.InvalidParameter),
		res.WithErrorMessage(msg),
	)
}

// StoreError 归类事务返回的错误：业务错误原样返回，唯一约束冲突转为 Conflict，其余为 Fail
func StoreError(err error, failMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}

	var be *res.BusinessError
	if errors.As(err, &be) {
		return be
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ConflictError(conflictMsg)
	}
	return res.NewBusinessError(
		res.WithErrorCode(res.Fail),
		res.WithErrorMessage(failMsg),
		res.WithError(err),
	)
}
