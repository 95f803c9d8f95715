package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/page"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	ok bool
}

func (f *fakeAuth) IsAuthenticated() bool { return f.ok }

func text(s string) View {
	return ViewFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s+"\n")
		return err
	})
}

func newTestNavigator(auth Authenticator, out io.Writer) *Navigator {
	n := NewNavigator(auth, out)
	n.Public(LoginPath, text("login"))
	n.Protected(HomePath, "Inicio", text("inicio"))
	n.Protected(EmployeesPath, "Empleados", text("empleados"))
	n.Protected(DepartmentsPath, "Departamentos", text("departamentos"))
	return n
}

func TestGuard_RedirectsWhenLoggedOut(t *testing.T) {
	var out bytes.Buffer
	auth := &fakeAuth{}
	n := newTestNavigator(auth, &out)

	require.NoError(t, n.Navigate(context.Background(), EmployeesPath))
	require.Equal(t, LoginPath, n.Current())
	require.Equal(t, "login\n", out.String())
	require.True(t, n.IsProtected(EmployeesPath))
	require.False(t, n.IsProtected(LoginPath))
}

func TestGuard_RechecksOnEveryRender(t *testing.T) {
	var out bytes.Buffer
	auth := &fakeAuth{ok: true}
	n := newTestNavigator(auth, &out)

	require.NoError(t, n.Navigate(context.Background(), EmployeesPath))
	require.Equal(t, EmployeesPath, n.Current())
	require.Contains(t, out.String(), "empleados")

	auth.ok = false
	out.Reset()
	require.NoError(t, n.Navigate(context.Background(), EmployeesPath))
	require.Equal(t, LoginPath, n.Current())
	require.NotContains(t, out.String(), "empleados")
}

func TestNavigator_LayoutMarksActiveItem(t *testing.T) {
	var out bytes.Buffer
	n := newTestNavigator(&fakeAuth{ok: true}, &out)

	require.NoError(t, n.Navigate(context.Background(), DepartmentsPath))
	require.Contains(t, out.String(), "Gestor de Empleados\nInicio | Empleados | [Departamentos]\n")

	items := n.NavItems()
	require.Len(t, items, 3)
	require.False(t, items[0].Active)
	require.True(t, items[2].Active)
}

func TestNavigator_HomeMatchesExactly(t *testing.T) {
	n := newTestNavigator(&fakeAuth{ok: true}, io.Discard)

	require.NoError(t, n.Navigate(context.Background(), HomePath))
	items := n.NavItems()
	require.True(t, items[0].Active)
	require.False(t, items[1].Active)

	require.NoError(t, n.Navigate(context.Background(), EmployeesPath))
	items = n.NavItems()
	require.False(t, items[0].Active)
	require.True(t, items[1].Active)
}

func TestNavigator_FollowsRedirectRequestedDuringRender(t *testing.T) {
	var out bytes.Buffer
	n := NewNavigator(&fakeAuth{ok: true}, &out)
	n.Public(LoginPath, text("login"))
	expired := errors.New("la sesión ha expirado")
	n.Protected(EmployeesPath, "Empleados", ViewFunc(func(context.Context, io.Writer) error {
		n.Redirect(LoginPath)
		return expired
	}))

	err := n.Navigate(context.Background(), EmployeesPath)
	require.ErrorIs(t, err, expired)
	require.Equal(t, LoginPath, n.Current())
	require.True(t, strings.HasSuffix(out.String(), "login\n"))
}

func TestNavigator_RedirectLoop(t *testing.T) {
	n := NewNavigator(&fakeAuth{}, io.Discard)
	n.Public("/a", ViewFunc(func(context.Context, io.Writer) error { n.Redirect("/b"); return nil }))
	n.Public("/b", ViewFunc(func(context.Context, io.Writer) error { n.Redirect("/a"); return nil }))

	require.ErrorIs(t, n.Navigate(context.Background(), "/a"), ErrTooManyRedirects)
}

func TestNavigator_UnknownRoute(t *testing.T) {
	n := NewNavigator(&fakeAuth{}, io.Discard)
	require.Error(t, n.Navigate(context.Background(), "/nada"))
}

type listStub struct {
	items []domain.Employee
	err   error
}

func (l *listStub) List(context.Context) ([]domain.Employee, error) { return l.items, l.err }
func (l *listStub) Create(context.Context, domain.EmployeeInput) (domain.Employee, error) {
	return domain.Employee{}, nil
}
func (l *listStub) Update(context.Context, int64, domain.EmployeeInput) (domain.Employee, error) {
	return domain.Employee{}, nil
}
func (l *listStub) Delete(context.Context, int64) error { return nil }

func TestListView_RendersTable(t *testing.T) {
	res := &listStub{items: []domain.Employee{
		{ID: 1, FirstName: "Ana", LastName: "Pérez", Salary: decimal.RequireFromString("45000.5"), Active: true,
			Department: &domain.DepartmentRef{ID: 1, Name: "Ventas"}},
		{ID: 2, FullName: "Luis Gómez", Salary: decimal.NewFromInt(1200)},
	}}
	p := page.NewEmployeesPage(res, page.Settings{})
	defer p.Dispose()

	var out bytes.Buffer
	require.NoError(t, ListView(p, EmployeeColumns(), "No hay empleados registrados").Render(context.Background(), &out))

	s := out.String()
	require.Contains(t, s, "Total: 2  Activos: 1  Inactivos: 1")
	require.Contains(t, s, "Ana Pérez")
	require.Contains(t, s, "Ventas")
	require.Contains(t, s, "Sin asignar")
	require.Contains(t, s, "Inactivo")
	require.Regexp(t, `\$45[.\s]?000,50`, s)
}

func TestFormatMoney_KeepsDecimalPrecision(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "99999999999999.99", want: `^\$99[.\s]?999[.\s]?999[.\s]?999[.\s]?999,99$`},
		{in: "0.005", want: `^\$0,01$`},
		{in: "-1200", want: `^\$-1[.\s]?200,00$`},
		{in: "123456789012345678901234.5", want: `^\$123456789012345678901234,50$`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Regexp(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestListView_EmptyAndFailed(t *testing.T) {
	res := &listStub{}
	p := page.NewEmployeesPage(res, page.Settings{})
	defer p.Dispose()

	var out bytes.Buffer
	require.NoError(t, ListView(p, EmployeeColumns(), "No hay empleados registrados").Render(context.Background(), &out))
	require.Contains(t, out.String(), "No hay empleados registrados")

	res.err = errors.New("HTTP error 500")
	p2 := page.NewEmployeesPage(res, page.Settings{})
	defer p2.Dispose()
	out.Reset()
	require.Error(t, ListView(p2, EmployeeColumns(), "").Render(context.Background(), &out))
	require.Contains(t, out.String(), "Error: HTTP error 500")
	require.Contains(t, out.String(), "Puede reintentar la carga.")
}

func TestWriteFormState(t *testing.T) {
	var out bytes.Buffer
	WriteFormState(&out, "El email ya está registrado", map[string]string{
		"nombre": "nombre es requerido",
		"email":  "El email no es válido",
	})
	require.Equal(t, "✗ El email ya está registrado\n  email: El email no es válido\n  nombre: nombre es requerido\n", out.String())
}
