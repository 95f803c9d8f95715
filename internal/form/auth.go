package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gestor-empleados/frontend/internal/domain"
)

type LoginDraft struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginForm 收集凭证并交给 onSubmit（通常是 Auth.Login）
type LoginForm struct {
	validator *Validator
	onSubmit  func(ctx context.Context, username, password string) error

	mu     sync.Mutex
	errors map[string]string
	banner string
}

func NewLoginForm(v *Validator, onSubmit func(ctx context.Context, username, password string) error) *LoginForm {
	return &LoginForm{validator: v, onSubmit: onSubmit, errors: map[string]string{}}
}

func (f *LoginForm) Submit(ctx context.Context, draft LoginDraft) error {
	draft.Username = strings.TrimSpace(draft.Username)
	if err := f.check(draft); err != nil {
		return err
	}

	err := f.onSubmit(ctx, draft.Username, draft.Password)
	f.setBanner(err, "Error al iniciar sesión")
	return err
}

func (f *LoginForm) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyErrors(f.errors)
}

func (f *LoginForm) Banner() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

func (f *LoginForm) check(draft any) error {
	err := f.validator.Check(draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = map[string]string{}
	var ve *ValidationError
	if errors.As(err, &ve) {
		f.errors = ve.Messages()
	}
	return err
}

func (f *LoginForm) setBanner(err error, fallback string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banner = bannerFor(err, fallback)
}

// RegisterForm 只负责创建账号，成功后由调用方跳转到登录页
type RegisterForm struct {
	validator *Validator
	onSubmit  func(ctx context.Context, reg domain.Registration) error

	mu     sync.Mutex
	errors map[string]string
	banner string
}

func NewRegisterForm(v *Validator, onSubmit func(ctx context.Context, reg domain.Registration) error) *RegisterForm {
	return &RegisterForm{validator: v, onSubmit: onSubmit, errors: map[string]string{}}
}

func (f *RegisterForm) Submit(ctx context.Context, reg domain.Registration) error {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.FullName != nil && strings.TrimSpace(*reg.FullName) == "" {
		reg.FullName = nil
	}

	err := f.validator.Check(reg)
	f.mu.Lock()
	f.errors = map[string]string{}
	var ve *ValidationError
	if errors.As(err, &ve) {
		f.errors = ve.Messages()
	}
	f.mu.Unlock()
	if err != nil {
		return err
	}

	err = f.onSubmit(ctx, reg)
	f.mu.Lock()
	f.banner = bannerFor(err, "Error al registrar")
	f.mu.Unlock()
	return err
}

func (f *RegisterForm) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyErrors(f.errors)
}

func (f *RegisterForm) Banner() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

func bannerFor(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func copyErrors(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
