package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempestapp/tempest-cli/internal/client/models"
	"github.com/tempestapp/tempest-cli/internal/logging"
)

// TokenSource returns the bearer token to attach to the next request, or ""
// when no session is active. It is consulted on every call, so the client
// never caches credentials and needs no mutable global header state.
type TokenSource func() string

// HTTPClient is the concrete REST Client for the Tempest backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

// do issues a single request and returns the status code and raw body.
// Transport-level failures are wrapped in ErrUnavailable; status codes are
// left for checkStatus.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug(ctx, "request completed",
		"method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
	return resp.StatusCode, respBody, nil
}

// extractMessage pulls human-readable text out of an error body. The
// backend is inconsistent here: 409s arrive as {"error": ...} or a plain
// string, login failures as {"message": ...}.
func extractMessage(body []byte) string {
	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}

func checkStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusConflict:
		return &ConflictError{Message: extractMessage(body)}
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return &StatusError{Code: status, Message: extractMessage(body)}
	}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	status, body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if err := checkStatus(status, body); err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// doText is for the recovery endpoints that answer with a sentence instead
// of a structured body. A JSON-quoted string is unquoted; anything else is
// returned verbatim.
func (c *HTTPClient) doText(ctx context.Context, method, path string, in any) (string, error) {
	status, body, err := c.do(ctx, method, path, in)
	if err != nil {
		return "", err
	}
	if err := checkStatus(status, body); err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}
	return string(body), nil
}

func (c *HTTPClient) WebsiteInfo(ctx context.Context) (models.Website, error) {
	var w models.Website
	if err := c.doJSON(ctx, http.MethodGet, "/website/1", nil, &w); err != nil {
		return models.Website{}, err
	}
	return w, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/signup", req, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, emailOrMobile, password string) (models.AuthResponse, error) {
	req := models.LoginRequest{EmailOrMobile: emailOrMobile, Password: password}
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) RequestOTP(ctx context.Context, emailOrMobile string) (string, error) {
	req := models.ForgotPasswordRequest{EmailOrMobile: emailOrMobile}
	return c.doText(ctx, http.MethodPost, "/forgot-password", req)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, emailOrMobile, otp string) (string, error) {
	req := models.VerifyOTPRequest{EmailOrMobile: emailOrMobile, OTP: otp}
	return c.doText(ctx, http.MethodPost, "/verify-otp", req)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, emailOrMobile, newPassword string) (string, error) {
	req := models.ResetPasswordRequest{EmailOrMobile: emailOrMobile, NewPassword: newPassword}
	return c.doText(ctx, http.MethodPost, "/reset-password", req)
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/user/%d", id), req, nil)
}
