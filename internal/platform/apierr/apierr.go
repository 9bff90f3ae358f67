package apierr

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===== Error model (shared by every feature package) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

// MsgInternal is shown to users when a collaborator (store, hashing, token signing) fails.
const MsgInternal = "حدث خطأ في الخادم"

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string           { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError       { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnauthorized(msg string) *APIError  { return &APIError{Code: CodeUnauthorized, Message: msg} }
func ErrForbidden(msg string) *APIError     { return &APIError{Code: CodeForbidden, Message: msg} }
func ErrNotFound(msg string) *APIError      { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError      { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError      { return &APIError{Code: CodeInternal, Message: msg} }
func Invalidf(f string, a ...any) *APIError { return ErrInvalid(fmt.Sprintf(f, a...)) }

// Is reports whether err carries an APIError with the given code.
func Is(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// ===== HTTP envelope =====

type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    Code   `json:"code"`
}

// Body converts err into the response envelope. Errors that are not *APIError
// are logged and replaced by a generic message.
func Body(err error) ErrorBody {
	var api *APIError
	if errors.As(err, &api) {
		return ErrorBody{Success: false, Error: api.Message, Code: api.Code}
	}
	log.Printf("[ERROR] %v", err)
	return ErrorBody{Success: false, Error: MsgInternal, Code: CodeInternal}
}

// Respond writes err with the matching status code.
func Respond(c *gin.Context, err error) {
	c.JSON(ToHTTPStatus(err), Body(err))
}

// Abort is Respond for middlewares.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(ToHTTPStatus(err), Body(err))
}
