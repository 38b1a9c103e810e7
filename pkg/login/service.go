package login

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-mall/pkg/captcha"
	"github.com/tendant/simple-mall/pkg/session"
	"github.com/tendant/simple-mall/pkg/sysuser"
	"github.com/tendant/simple-mall/pkg/utils"
)

// ErrBadCredentials is returned when the submitted password does not match the stored digest
var ErrBadCredentials = errors.New("incorrect password")

// LoginParams carries the login form fields
type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
	CodeKey  string `json:"code_key"`
}

// LoginResult is returned to the client on successful login
type LoginResult struct {
	Token string `json:"token"`
}

// LoginService verifies credentials and issues login sessions
type LoginService struct {
	userService *sysuser.UserService
	codes       *captcha.Service
	sessions    *session.Store
	initialTTL  time.Duration
}

// NewLoginService creates a new login service. initialTTL bounds how long a
// fresh login grant stays valid before its first authenticated request.
func NewLoginService(userService *sysuser.UserService, codes *captcha.Service, sessions *session.Store, initialTTL time.Duration) *LoginService {
	if initialTTL <= 0 {
		initialTTL = session.DefaultInitialTTL
	}
	return &LoginService{
		userService: userService,
		codes:       codes,
		sessions:    sessions,
		initialTTL:  initialTTL,
	}
}

// Login verifies the one-time code and the username/password pair, then mints
// an opaque token and persists the identity under it. The error distinguishes
// the failed factor for logging only; handlers collapse it for the response.
func (s *LoginService) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	// the code check consumes the code, so a replayed form fails here first
	if err := s.codes.Check(ctx, params.CodeKey, params.Captcha); err != nil {
		return nil, err
	}

	user, err := s.userService.GetUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, sysuser.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	digest := utils.DigestHex(params.Password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.Password)) != 1 {
		return nil, ErrBadCredentials
	}

	token := session.NewToken()
	if err := s.sessions.Create(ctx, token, &user, s.initialTTL); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("User logged in", "username", user.Username)
	return &LoginResult{Token: token}, nil
}

// Logout invalidates the session behind the token. Unknown tokens are fine.
func (s *LoginService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
