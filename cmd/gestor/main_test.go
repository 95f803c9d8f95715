package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/handler"
	"github.com/gestor-empleados/frontend/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupStub 启动开发用后端，并让命令行把会话保存在临时文件中
func setupStub(t *testing.T) (string, *repository.MemoryRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Stub.JWT.Secret = "test-secret"
	cfg.Stub.JWT.Expiration = 5

	repo := repository.NewMemoryRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&domain.User{Username: "admin", Email: "admin@example.com", PasswordHash: string(hash)}))

	h, err := handler.NewHandler(cfg, repo)
	require.NoError(t, err)
	h.RegisterRoutes()
	srv := httptest.NewServer(h.Mux)
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL+"/api")
	t.Setenv("SESSION_BACKEND", "file")
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("SESSION_FILE", sessionFile)
	t.Setenv("UI_CREATE_MODE", "append")
	return sessionFile, repo
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLI(t, stdin, args...)
	return out, err
}

func runCLI(t *testing.T, stdin string, args ...string) (string, *cli, error) {
	t.Helper()

	var out bytes.Buffer
	c := newCLI(strings.NewReader(stdin))
	cmd := c.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := c.execute(context.Background(), cmd)
	return out.String(), c, err
}

func TestLoginPersistsSession(t *testing.T) {
	setupStub(t)

	out, err := run(t, "", "open", "/employees")
	require.NoError(t, err)
	require.Contains(t, out, "Iniciar Sesión")

	out, err = run(t, "incorrecta\n", "login", "-u", "admin")
	require.Error(t, err)
	require.Contains(t, out, "✗ Usuario o contraseña incorrectos")

	out, err = run(t, "admin123\n", "login", "-u", "admin")
	require.NoError(t, err)
	require.Contains(t, out, "Bienvenido, admin")
	require.Contains(t, out, "[Inicio]")

	out, err = run(t, "", "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "Usuario: admin")

	_, err = run(t, "", "logout")
	require.NoError(t, err)
	_, err = run(t, "", "whoami")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestEntityCommands(t *testing.T) {
	_, repo := setupStub(t)
	_, err := run(t, "", "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)

	out, err := run(t, "", "departments", "create", "--nombre", "Ventas")
	require.NoError(t, err)
	require.Contains(t, out, "✓ Departamento creado correctamente")
	require.Contains(t, out, "[Departamentos]")

	out, err = run(t, "", "positions", "create", "--titulo", "Gerente", "--salario_min", "5000", "--salario_max", "3000")
	require.Error(t, err)
	require.Contains(t, out, "salario_max: El salario máximo debe ser mayor al mínimo")

	_, err = run(t, "", "positions", "create", "--titulo", "Analista")
	require.NoError(t, err)

	out, err = run(t, "", "employees", "create",
		"--codigo_empleado", "EMP001", "--nombre", "Ana", "--apellido", "Pérez", "--email", "ana@example.com",
		"--fecha_contratacion", "2024-01-15", "--salario", "45000", "--departamento_id", "1", "--Posicion_id", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Ana Pérez")
	require.Contains(t, out, "Total: 1  Activos: 1  Inactivos: 0")

	out, err = run(t, "", "employees", "update", "1", "--activo", "false")
	require.NoError(t, err)
	require.Contains(t, out, "Activos: 0  Inactivos: 1")

	out, err = run(t, "n\n", "employees", "delete", "1")
	require.NoError(t, err)
	require.Contains(t, out, "¿Está seguro de eliminar a Ana Pérez?")
	require.Contains(t, out, "Operación cancelada")

	_, err = run(t, "s\n", "employees", "delete", "1")
	require.NoError(t, err)
	employees, err := repo.GetAllEmployees(0, 100)
	require.NoError(t, err)
	require.Empty(t, employees)

	out, err = run(t, "", "open")
	require.NoError(t, err)
	require.Contains(t, out, "Departamentos")
}

func TestSessionExpiredRedirectsToLogin(t *testing.T) {
	sessionFile, _ := setupStub(t)
	require.NoError(t, os.WriteFile(sessionFile, []byte(`{"token": "caducado"}`), 0o600))

	out, err := run(t, "", "employees", "list")
	require.ErrorContains(t, err, apiclient.ErrSessionExpired.Error())
	require.Contains(t, out, "Iniciar Sesión")

	_, err = run(t, "", "whoami")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestAppClosedAfterFailingCommand(t *testing.T) {
	setupStub(t)

	_, c, err := runCLI(t, "", "login", "-u", "admin", "-p", "incorrecta")
	require.Error(t, err)
	require.NotNil(t, c.app)
	require.True(t, c.app.Closed())

	_, c, err = runCLI(t, "", "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)
	require.True(t, c.app.Closed())
}

func TestReadPassword_FromNonTerminalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(path, []byte("admin123\n"), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	password, err := newCLI(f).readPassword(&out, "Contraseña: ")
	require.NoError(t, err)
	require.Equal(t, "admin123", password)
	require.Equal(t, "Contraseña: ", out.String())
}
