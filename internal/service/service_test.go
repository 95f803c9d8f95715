package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/handler"
	"github.com/gestor-empleados/frontend/internal/repository"
	"github.com/gestor-empleados/frontend/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	sessions    *session.Manager
	client      *apiclient.Client
	auth        *Auth
	employees   *Resource[domain.Employee, domain.EmployeeInput]
	departments *Resource[domain.Department, domain.DepartmentInput]
	positions   *Resource[domain.Position, domain.PositionInput]
}

func newFixture(t *testing.T) *fixture {
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

	sessions, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)
	client := apiclient.New(srv.URL+"/api", sessions)

	return &fixture{
		sessions:    sessions,
		client:      client,
		auth:        NewAuth(client, sessions),
		employees:   NewEmployees(client),
		departments: NewDepartments(client),
		positions:   NewPositions(client),
	}
}

func TestAuth_LoginStoresTokenAndUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Login(ctx, "admin", "mala")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Usuario o contraseña incorrectos", apiErr.Detail)
	require.False(t, f.auth.IsAuthenticated())

	s, err := f.auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, s.Token)
	require.Equal(t, "admin", s.User.Username)
	require.True(t, f.auth.IsAuthenticated())
	require.Equal(t, s.Token, f.sessions.Token())
	require.Equal(t, "admin", f.sessions.User().Username)
}

func TestAuth_RegisterDoesNotLogin(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(context.Background(), domain.Registration{
		Username: "ana", Email: "ana@example.com", Password: "secreto",
	})
	require.NoError(t, err)
	require.Equal(t, "ana", user.Username)
	require.False(t, f.auth.IsAuthenticated())

	_, err = f.auth.Login(context.Background(), "ana", "secreto")
	require.NoError(t, err)
}

func TestAuth_LogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	redirected := false
	f.auth.SetLogoutHook(func() { redirected = true })
	require.NoError(t, f.auth.Logout(ctx))
	require.False(t, f.auth.IsAuthenticated())
	require.True(t, redirected)

	_, err = f.departments.List(ctx)
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
}

func TestResource_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	depts, err := f.departments.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, depts)
	require.Empty(t, depts)

	dept, err := f.departments.Create(ctx, domain.DepartmentInput{Name: "Ventas"})
	require.NoError(t, err)
	pos, err := f.positions.Create(ctx, domain.PositionInput{
		Title:     "Analista",
		SalaryMin: decimal.NewNullDecimal(decimal.NewFromInt(1000)),
	})
	require.NoError(t, err)
	require.False(t, pos.SalaryMax.Valid)

	emp, err := f.employees.Create(ctx, domain.EmployeeInput{
		Code: "EMP001", FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com",
		HireDate: "2024-01-15", Salary: decimal.RequireFromString("45000.50"), Active: true,
		DepartmentID: dept.ID, PositionID: pos.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Ana Pérez", emp.DisplayName())
	require.Equal(t, dept.ID, emp.DepartmentKey())

	got, err := f.employees.Get(ctx, emp.ID)
	require.NoError(t, err)
	require.True(t, got.Salary.Equal(decimal.RequireFromString("45000.5")))

	updated, err := f.departments.Update(ctx, dept.ID, domain.DepartmentInput{Name: "Comercial"})
	require.NoError(t, err)
	require.Equal(t, "Comercial", updated.Name)

	require.NoError(t, f.employees.Delete(ctx, emp.ID))
	_, err = f.employees.Get(ctx, emp.ID)
	require.True(t, apiclient.IsNotFound(err))
}

func TestResource_RejectsRecordsWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "nombre": "IT"}, {"nombre": "sin id"}]`))
	}))
	defer srv.Close()

	sessions, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)
	_, err = NewDepartments(apiclient.New(srv.URL, sessions)).List(context.Background())
	require.True(t, errors.Is(err, apiclient.ErrMalformedResponse))
}

func TestAuth_LoginSendsBearerOnLaterCalls(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			require.NoError(t, r.ParseForm())
			require.Equal(t, "admin", r.PostForm.Get("username"))
			require.Equal(t, "admin123", r.PostForm.Get("password"))
			_, _ = w.Write([]byte(`{"access_token": "t1", "token_type": "bearer"}`))
		case "/auth/me":
			_, _ = w.Write([]byte(`{"id": 1, "username": "admin"}`))
		default:
			auth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	sessions, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)
	client := apiclient.New(srv.URL, sessions)

	_, err = NewAuth(client, sessions).Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "t1", sessions.Token())

	_, err = NewEmployees(client).List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer t1", auth)
}

func TestResource_UnauthorizedFromAnyEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		call func(client *apiclient.Client) error
	}{
		{name: "employees", call: func(c *apiclient.Client) error { _, err := NewEmployees(c).List(context.Background()); return err }},
		{name: "departments", call: func(c *apiclient.Client) error { return NewDepartments(c).Delete(context.Background(), 1) }},
		{name: "positions", call: func(c *apiclient.Client) error {
			_, err := NewPositions(c).Update(context.Background(), 1, domain.PositionInput{Title: "x"})
			return err
		}},
		{name: "me", call: func(c *apiclient.Client) error { _, err := NewAuth(c, nil).Me(context.Background()); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			require.NoError(t, store.Save(context.Background(), &domain.Session{Token: "t1"}))
			sessions, err := session.NewManager(context.Background(), store)
			require.NoError(t, err)

			redirected := false
			client := apiclient.New(srv.URL, sessions, apiclient.OnSessionExpired(func() { redirected = true }))

			require.ErrorIs(t, tt.call(client), apiclient.ErrSessionExpired)
			require.False(t, sessions.IsAuthenticated())
			require.True(t, redirected)

			persisted, err := store.Load(context.Background())
			require.NoError(t, err)
			require.Nil(t, persisted)
		})
	}
}

func TestAuth_LoginFailsWhenProfileRejectsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			_, _ = w.Write([]byte(`{"access_token": "t1", "token_type": "bearer"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sessions, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)
	redirected := false
	client := apiclient.New(srv.URL, sessions, apiclient.OnSessionExpired(func() { redirected = true }))

	s, err := NewAuth(client, sessions).Login(context.Background(), "admin", "admin123")
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
	require.Nil(t, s)
	require.False(t, sessions.IsAuthenticated())
	require.True(t, redirected)
}

func TestAuth_LoginToleratesProfileFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			_, _ = w.Write([]byte(`{"access_token": "t1", "token_type": "bearer"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sessions, err := session.NewManager(context.Background(), session.NewMemoryStore())
	require.NoError(t, err)

	s, err := NewAuth(apiclient.New(srv.URL, sessions), sessions).Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "t1", s.Token)
	require.Nil(t, s.User)
	require.True(t, sessions.IsAuthenticated())
}
