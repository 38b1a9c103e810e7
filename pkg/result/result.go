package result

import (
	"net/http"

	"github.com/go-chi/render"
)

// Code is a business result code carried in the response envelope. The HTTP
// status stays 200; admin frontends branch on the envelope code.
type Code int

const (
	CodeSuccess      Code = 200
	CodeLoginError   Code = 201
	CodeInvalidCode  Code = 202
	CodeNotLoggedIn  Code = 208
	CodeNoPermission Code = 209
	CodeFail         Code = 500
)

var messages = map[Code]string{
	CodeSuccess:      "success",
	CodeLoginError:   "incorrect username or password",
	CodeInvalidCode:  "validate code check failed",
	CodeNotLoggedIn:  "not logged in",
	CodeNoPermission: "no permission",
	CodeFail:         "operation failed",
}

// Result is the uniform response envelope for all admin endpoints
type Result struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Build creates a result with the given data and code
func Build(data interface{}, code Code) Result {
	return Result{
		Code:    code,
		Message: messages[code],
		Data:    data,
	}
}

// Ok creates a success result wrapping data
func Ok(data interface{}) Result {
	return Build(data, CodeSuccess)
}

// Fail creates a failure result with a nil data payload
func Fail(code Code) Result {
	return Build(nil, code)
}

// Render writes the envelope as JSON with HTTP status 200
func Render(w http.ResponseWriter, r *http.Request, res Result) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}
