package apperr

import (
	"errors"
	"fmt"
)

// 错误大类。NotFound 对无权限调用方同时覆盖"不存在"与"已软删"，
// 故意与 Forbidden 不可区分，避免探测内容存在性
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrCapacity        = errors.New("capacity exceeded")
	ErrConflict        = errors.New("already in state")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: ErrUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func NotFound(resource string, id uint64) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s %d not found", resource, id)}
}

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Capacity(msg string) *Error {
	return &Error{Kind: ErrCapacity, Message: msg}
}

// Conflict 状态机重复迁移：重复删除、重复置顶、未置顶时取消置顶等
func Conflict(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}
