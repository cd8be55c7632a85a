package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/domain"
)

type Err struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"message"`
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        err.Error(),
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, err)
}

func ErrUnauthorized(err error) *Err {
	return NewErr(http.StatusUnauthorized, err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, err)
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err)
}

// ErrInternalServerError logs the real error and renders a generic message.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "internal server error",
	}
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
