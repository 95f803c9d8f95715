package session

import (
	"context"
	"sync"

	"github.com/gestor-empleados/frontend/internal/domain"
)

// Manager 是会话唯一的修改入口，其余组件只通过它读取令牌
type Manager struct {
	mu      sync.RWMutex
	store   Store
	current *domain.Session
}

// NewManager 从 store 中恢复上一次保存的会话
func NewManager(ctx context.Context, store Store) (*Manager, error) {
	current, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Manager{store: store, current: current}, nil
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return ""
	}
	return m.current.Token
}

func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil || m.current.User == nil {
		return nil
	}
	u := *m.current.User
	return &u
}

// IsAuthenticated 只检查令牌是否存在，不会向后端验证
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

func (m *Manager) SetSession(ctx context.Context, s *domain.Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}

	cp := *s
	m.mu.Lock()
	m.current = &cp
	m.mu.Unlock()
	return nil
}

// SetUser 更新缓存的用户信息，没有会话时什么也不做
func (m *Manager) SetUser(ctx context.Context, u *domain.User) error {
	m.mu.RLock()
	current := m.current
	m.mu.RUnlock()
	if current == nil {
		return nil
	}

	return m.SetSession(ctx, &domain.Session{Token: current.Token, User: u})
}

// ClearSession 先清空内存中的会话，确保之后的请求不再携带旧令牌
func (m *Manager) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	return m.store.Clear(ctx)
}
