package response

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"

	"sos-srv/pkg/discord"
	"sos-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

func NewOKResp(data any) Resp {
	return Resp{Message: MessageSuccess, Data: data}
}

// OK sends 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Created sends 201 with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, NewOKResp(data))
}

func Unauthorized(c *gin.Context) {
	HttpError(c, errors.NewUnauthorizedHTTPError())
}

func Forbidden(c *gin.Context) {
	HttpError(c, errors.NewForbiddenHTTPError())
}

// Error renders err. Errors that are not already mapped become a 500 and,
// when d is set, are reported to Discord with a stack trace.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	status, resp := parseError(c, err, d)
	c.JSON(status, resp)
}

func HttpError(c *gin.Context, err *errors.HTTPError) {
	status, resp := parseError(c, err, nil)
	c.JSON(status, resp)
}

// ErrorWithMap renders the mapped HTTPError for err when present.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping, d discord.IDiscord) {
	for target, httpErr := range eMap {
		if stderrors.Is(err, target) {
			HttpError(c, httpErr)
			return
		}
	}
	Error(c, err, d)
}

// PanicError renders a recovered panic value.
func PanicError(c *gin.Context, rec any, d discord.IDiscord) {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	Error(c, err, d)
}

func parseError(c *gin.Context, err error, d discord.IDiscord) (int, Resp) {
	var (
		httpErr   *errors.HTTPError
		valErr    *errors.ValidationError
		collector *errors.ValidationErrorCollector
	)
	switch {
	case stderrors.As(err, &httpErr):
		status := httpErr.StatusCode
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, Resp{
			ErrorCode: httpErr.Code,
			Kind:      httpErr.Kind,
			Message:   httpErr.Message,
			Data:      httpErr.Data,
		}
	case stderrors.As(err, &collector):
		return http.StatusBadRequest, Resp{
			ErrorCode: ValidationErrorCode,
			Kind:      errors.KindValidation,
			Message:   ValidationErrorMsg,
			Errors:    collector.Errors(),
		}
	case stderrors.As(err, &valErr):
		return http.StatusBadRequest, Resp{
			ErrorCode: valErr.Code,
			Kind:      errors.KindValidation,
			Message:   valErr.Error(),
		}
	default:
		if d != nil && err != nil {
			reportBug(d, buildReport(c, err.Error(), captureStackTrace()))
		}
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Kind:      errors.KindTransient,
			Message:   DefaultErrorMessage,
		}
	}
}

func captureStackTrace() []string {
	var pcs [stackTraceDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	var trace []string
	for {
		f, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function))
		if !more {
			break
		}
	}
	return trace
}
