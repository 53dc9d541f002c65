// Package api implements the HTTP client used by backctl.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seamline/backoffice/pkg/api"
)

// Client talks to the back-office server.
type Client struct {
	httpClient *http.Client
	baseURL    string

	// bearer token attached to authenticated requests
	accessToken string
}

// NewClient creates an API client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetAccessToken sets the bearer token for subsequent requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// envelope mirrors the server response shape with the data left raw so
// each call can decode its own payload type.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Total   int             `json:"total"`
}

// apiError is a non-2xx response from the server.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 response, meaning the
// access token should be refreshed.
func IsUnauthorized(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Login authenticates and returns the token pair with the user.
func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginData, error) {
	var data api.LoginData
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login",
		api.LoginRequest{Email: email, Password: password}, &data)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &data, nil
}

// Refresh trades the refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var data api.RefreshData
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh",
		api.RefreshRequest{RefreshToken: refreshToken}, &data)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	return data.AccessToken, nil
}

// Logout revokes the refresh token on the server.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout",
		api.LogoutRequest{RefreshToken: refreshToken}, nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// UserInfo returns the authenticated user.
func (c *Client) UserInfo(ctx context.Context) (*api.UserData, error) {
	var data api.UserData
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/userinfo", nil, &data)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	return &data, nil
}

// FindUsers lists users matching the query. Requires an admin token.
func (c *Client) FindUsers(ctx context.Context, req api.ListRequest) ([]api.UserData, int, error) {
	var data []api.UserData
	total, err := c.doListRequest(ctx, "/api/v1/users/find", req, &data)
	if err != nil {
		return nil, 0, fmt.Errorf("find users request failed: %w", err)
	}
	return data, total, nil
}

// VerifyOTP submits a verification code for an account.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*api.UserData, error) {
	var data api.UserData
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/verify-otp/"+email,
		api.VerifyOTPRequest{OTP: code}, &data)
	if err != nil {
		return nil, fmt.Errorf("verify request failed: %w", err)
	}
	return &data, nil
}

// SendOTP asks the server to email a fresh verification code.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/otp/"+email, nil, nil)
	if err != nil {
		return fmt.Errorf("send code request failed: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func (c *Client) doListRequest(ctx context.Context, path string, body, result any) (int, error) {
	env, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return 0, err
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return 0, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return env.Total, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err := json.Unmarshal(respBody, &env); err == nil && env.Message != "" {
			return nil, &apiError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return nil, &apiError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return &env, nil
}
