package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/audit-service/internal/config"
	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
	"github.com/wekeepgrowing/audit-service/internal/domain/provider"
)

// AuthClient talks to the Supabase GoTrue REST API. All credential
// handling lives upstream; this service only relays requests and tokens.
type AuthClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewAuthClient creates a new Supabase auth provider.
func NewAuthClient(cfg config.SupabaseConfig, logger *zap.Logger) provider.AuthProvider {
	return &AuthClient{
		baseURL: strings.TrimRight(cfg.ProjectURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// gotrueError matches the error bodies GoTrue returns across versions.
type gotrueError struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *gotrueError) text() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	}
	return "authentication request rejected"
}

// SignIn exchanges credentials for a session using the password grant.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password",
		&credentialsPayload{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var session entity.AuthSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode auth session: %w", err)
	}

	return &session, nil
}

// SignUp registers a new user. Email confirmation, password policies and
// the confirmation redirect are configured upstream.
func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*entity.AuthUser, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/v1/signup",
		&credentialsPayload{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}

	// GoTrue returns either the user object or a full session depending on
	// the autoconfirm setting.
	var session entity.AuthSession
	if err := json.Unmarshal(body, &session); err == nil && session.User.ID != "" {
		return &session.User, nil
	}

	var user entity.AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}

	return &user, nil
}

// SignOut revokes the access token.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken)
	return err
}

// ResetPassword triggers the recovery email flow.
func (c *AuthClient) ResetPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/v1/recover",
		&credentialsPayload{Email: email}, "")
	return err
}

// GetUser resolves the user behind an access token.
func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*entity.AuthUser, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var user entity.AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

func (c *AuthClient) do(ctx context.Context, method, path string, payload interface{}, accessToken string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Auth provider request failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var gtErr gotrueError
		_ = json.Unmarshal(body, &gtErr)
		c.logger.Warn("Auth provider rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAuthFailed, gtErr.text())
	}

	return body, nil
}
