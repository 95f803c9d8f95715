package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gestor-empleados/frontend/internal/domain"
)

// FileStore 把会话保存为一个 JSON 文档，重启之后依然有效
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath 返回用户配置目录下的会话文件
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gestor-empleados", "session.json"), nil
}

type fileDocument struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

func (f *FileStore) Load(_ context.Context) (*domain.Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	if doc.Token == "" {
		return nil, nil
	}

	return &domain.Session{Token: doc.Token, User: doc.User}, nil
}

func (f *FileStore) Save(_ context.Context, s *domain.Session) error {
	data, err := json.Marshal(fileDocument{Token: s.Token, User: s.User})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	// 先写临时文件再改名，避免留下写了一半的会话
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
