package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	s, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, s)

	name := "Ana Pérez"
	require.NoError(t, store.Save(ctx, &domain.Session{
		Token: "t1",
		User:  &domain.User{ID: 3, Username: "ana", FullName: &name},
	}))

	s, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "t1", s.Token)
	require.Equal(t, "Ana Pérez", s.User.DisplayName())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	s, err = store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
}

func TestManager_RestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "t1"}))

	m, err := NewManager(ctx, store)
	require.NoError(t, err)
	require.True(t, m.IsAuthenticated())
	require.Equal(t, "t1", m.Token())
	require.Nil(t, m.User())
}

func TestManager_SetUserAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m, err := NewManager(ctx, store)
	require.NoError(t, err)
	require.False(t, m.IsAuthenticated())

	// 没有会话时 SetUser 不会凭空创建会话
	require.NoError(t, m.SetUser(ctx, &domain.User{Username: "ana"}))
	require.False(t, m.IsAuthenticated())

	require.NoError(t, m.SetSession(ctx, &domain.Session{Token: "t2"}))
	require.NoError(t, m.SetUser(ctx, &domain.User{Username: "ana"}))
	require.Equal(t, "ana", m.User().Username)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "t2", persisted.Token)
	require.Equal(t, "ana", persisted.User.Username)

	// 返回的是副本，修改它不影响管理器
	u := m.User()
	u.Username = "otro"
	require.Equal(t, "ana", m.User().Username)

	require.NoError(t, m.ClearSession(ctx))
	require.False(t, m.IsAuthenticated())
	require.Empty(t, m.Token())
	persisted, err = store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, persisted)
}
