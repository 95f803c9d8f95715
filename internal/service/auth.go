package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/session"
)

type Auth struct {
	client   *apiclient.Client
	sessions *session.Manager
	onLogout func()
}

func NewAuth(client *apiclient.Client, sessions *session.Manager) *Auth {
	return &Auth{client: client, sessions: sessions}
}

// SetLogoutHook 注册登出后的跳转
func (a *Auth) SetLogoutHook(fn func()) {
	a.onLogout = fn
}

// Login 以表单提交凭证，成功后保存令牌；失败时原样返回后端的错误信息，不重试
func (a *Auth) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp domain.TokenResponse
	if err := a.client.PostForm(ctx, "/auth/login", form, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, apiclient.ErrMalformedResponse
	}

	s := &domain.Session{Token: resp.AccessToken}
	if err := a.sessions.SetSession(ctx, s); err != nil {
		return nil, err
	}

	// 用户信息只是缓存，拿不到不影响登录；但令牌被拒绝时会话已经被清除，登录不算成功
	user, err := a.Me(ctx)
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return nil, err
	}
	if err != nil {
		slog.Warn("无法获取当前用户信息", "error", err)
		return s, nil
	}
	if err := a.sessions.SetUser(ctx, user); err != nil {
		slog.Warn("无法缓存当前用户信息", "error", err)
	}
	s.User = user
	return s, nil
}

// Register 只创建账号，不会自动登录
func (a *Auth) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	user := &domain.User{}
	if err := a.client.Do(ctx, http.MethodPost, "/auth/register", reg, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Auth) Me(ctx context.Context) (*domain.User, error) {
	user := &domain.User{}
	if err := a.client.Do(ctx, http.MethodGet, "/auth/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	err := a.sessions.ClearSession(ctx)
	if a.onLogout != nil {
		a.onLogout()
	}
	return err
}

func (a *Auth) IsAuthenticated() bool {
	return a.sessions.IsAuthenticated()
}
