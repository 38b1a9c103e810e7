// Package captcha manages the short-lived, single-use validate codes checked
// during login. Rendering the code as an image is the frontend collaborator's
// concern; this service owns generation, storage, and the read-once check.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/simple-mall/pkg/utils"
)

var (
	// ErrCodeExpired is returned when the code key has no stored code (expired or never issued)
	ErrCodeExpired = errors.New("validate code expired or missing")
	// ErrCodeMismatch is returned when the submitted code does not match the stored one
	ErrCodeMismatch = errors.New("validate code mismatch")
)

// codeKeyPrefix keeps validate codes in their own namespace, apart from sessions
const codeKeyPrefix = "user:login:validatecode:"

const (
	codeLength     = 4
	DefaultCodeTTL = 5 * time.Minute
)

// ValidateCode is the generated code handed to the login page
type ValidateCode struct {
	CodeKey   string `json:"code_key"`
	CodeValue string `json:"code_value"`
}

// Service generates and checks one-time validate codes backed by Redis
type Service struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewService creates a validate code service over an injected Redis client
func NewService(client redis.UniversalClient) *Service {
	return &Service{
		client: client,
		ttl:    DefaultCodeTTL,
	}
}

func codeKey(key string) string {
	return codeKeyPrefix + key
}

// Generate mints a new validate code and stores it under a fresh key
func (s *Service) Generate(ctx context.Context) (ValidateCode, error) {
	code := ValidateCode{
		CodeKey:   uuid.NewString(),
		CodeValue: utils.GenerateRandomCode(codeLength),
	}
	if err := s.client.Set(ctx, codeKey(code.CodeKey), code.CodeValue, s.ttl).Err(); err != nil {
		return ValidateCode{}, fmt.Errorf("failed to store validate code: %w", err)
	}
	return code, nil
}

// Check compares the submitted code (case-insensitively) against the stored
// one and consumes it on success. Each code verifies at most once.
func (s *Service) Check(ctx context.Context, key, code string) error {
	stored, err := s.client.Get(ctx, codeKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCodeExpired
		}
		return fmt.Errorf("failed to read validate code: %w", err)
	}

	if !strings.EqualFold(stored, code) {
		return ErrCodeMismatch
	}

	if err := s.client.Del(ctx, codeKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to consume validate code: %w", err)
	}
	return nil
}
