package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-mall/pkg/authctx"
	"github.com/tendant/simple-mall/pkg/captcha"
	"github.com/tendant/simple-mall/pkg/result"
	"github.com/tendant/simple-mall/pkg/sysuser"
)

// Handle handles the login, logout, and validate-code endpoints
type Handle struct {
	loginService *LoginService
	codes        *captcha.Service
}

func NewHandle(loginService *LoginService, codes *captcha.Service) Handle {
	return Handle{
		loginService: loginService,
		codes:        codes,
	}
}

// RegisterPublicRoutes registers the routes reachable without a session
func (h Handle) RegisterPublicRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Get("/generateValidateCode", h.GenerateValidateCode)
}

// RegisterProtectedRoutes registers the routes that require a session
func (h Handle) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/logout", h.Logout)
	r.Get("/userInfo", h.UserInfo)
}

// Login handles the login form submission
// (POST /index/login)
func (h Handle) Login(w http.ResponseWriter, r *http.Request) {
	data := LoginParams{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		slog.Error("Failed parsing login body", "err", err)
		result.Render(w, r, result.Fail(result.CodeLoginError))
		return
	}

	loginResult, err := h.loginService.Login(r.Context(), data)
	if err != nil {
		// log the failed factor, respond without distinguishing it
		slog.Warn("Login failed", "username", data.Username, "err", err)
		switch {
		case errors.Is(err, captcha.ErrCodeExpired), errors.Is(err, captcha.ErrCodeMismatch):
			result.Render(w, r, result.Fail(result.CodeInvalidCode))
		case errors.Is(err, sysuser.ErrUserNotFound), errors.Is(err, ErrBadCredentials):
			result.Render(w, r, result.Fail(result.CodeLoginError))
		default:
			result.Render(w, r, result.Fail(result.CodeFail))
		}
		return
	}
	result.Render(w, r, result.Ok(loginResult))
}

// Logout deletes the session named by the token header
// (GET /index/logout)
func (h Handle) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("token")
	if err := h.loginService.Logout(r.Context(), token); err != nil {
		slog.Error("Failed deleting session on logout", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(nil))
}

// UserInfo returns the identity of the current session
// (GET /index/userInfo)
func (h Handle) UserInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := authctx.IdentityFromContext(r.Context())
	if !ok {
		result.Render(w, r, result.Fail(result.CodeNotLoggedIn))
		return
	}
	result.Render(w, r, result.Ok(user))
}

// GenerateValidateCode mints a fresh one-time code for the login page
// (GET /index/generateValidateCode)
func (h Handle) GenerateValidateCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.codes.Generate(r.Context())
	if err != nil {
		slog.Error("Failed generating validate code", "err", err)
		result.Render(w, r, result.Fail(result.CodeFail))
		return
	}
	result.Render(w, r, result.Ok(code))
}
