package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionSource 提供当前令牌，并在令牌失效时负责清除会话
type SessionSource interface {
	Token() string
	ClearSession(ctx context.Context) error
}

type Client struct {
	baseURL          string
	httpClient       *http.Client
	sessions         SessionSource
	onSessionExpired func()
	logger           *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// OnSessionExpired 注册 401 之后的副作用，通常是跳转到登录页
func OnSessionExpired(fn func()) Option {
	return func(c *Client) {
		c.onSessionExpired = fn
	}
}

func New(baseURL string, sessions SessionSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSessionExpiredHook 在导航层创建之后再挂上跳转逻辑，必须在发出请求之前调用
func (c *Client) SetSessionExpiredHook(fn func()) {
	c.onSessionExpired = fn
}

// Do 以 JSON 发送 body，并把 2xx 响应体解析到 out 中（out 为 nil 时丢弃响应体）
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, path, out)
}

// PostForm 用于登录接口，凭证以表单编码提交
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, path, out)
}

func (c *Client) send(req *http.Request, path string, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	public := isPublicPath(path)
	if !public {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("请求发送失败", "method", req.Method, "path", path, "request_id", requestID, "error", err)
		return &NetworkError{Method: req.Method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("读取响应失败", "method", req.Method, "path", path, "request_id", requestID, "error", err)
		return &NetworkError{Method: req.Method, Path: path, Err: err}
	}

	c.logger.Debug("已完成请求", "method", req.Method, "path", path, "status", resp.StatusCode, "request_id", requestID, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized && !public:
		c.expireSession(req.Context())
		return ErrSessionExpired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		apiErr := parseAPIError(resp.StatusCode, data)
		c.logger.Warn("后端拒绝了请求", "method", req.Method, "path", path, "status", resp.StatusCode, "request_id", requestID, "detail", apiErr.Detail)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) expireSession(ctx context.Context) {
	// 原请求的 ctx 可能已经被取消，清除会话不应该因此失败
	if err := c.sessions.ClearSession(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("无法清除会话", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// 登录和注册不携带令牌，它们的 401 也只是普通的业务错误
func isPublicPath(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}
