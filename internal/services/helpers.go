package services

import (
	"errors"
	"net/http"

	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// asAppError passes AppErrors through and wraps anything else as an
// internal error with msg.
func asAppError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.InternalError(msg, err)
}

// badRequestConflict is a uniqueness or state clash reported with HTTP 400.
func badRequestConflict(msg string, err error) *utils.AppError {
	return &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeConflict, Message: msg, Err: err}
}

// clampPage applies the default and maximum page size.
func clampPage(opts repositories.ListOptions, def, max int) repositories.ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = def
	}
	if opts.Limit > max {
		opts.Limit = max
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
