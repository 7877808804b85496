package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

func ErrNotFound(resource string) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    resource + " not found",
	}
}

func ErrUnprocessableEntity(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    err.Error(),
	}
}

// ErrInternalServerError hides the cause from the client and logs it instead.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    "something went wrong",
	}
}
