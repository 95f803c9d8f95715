package form

import (
	"context"
	"errors"
	"testing"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type staticLister[T any] struct {
	items []T
	err   error
}

func (s staticLister[T]) List(context.Context) ([]T, error) {
	return s.items, s.err
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func fillEmployee(t *testing.T, f *EmployeeForm, values map[string]string) {
	t.Helper()
	for field, value := range values {
		require.NoError(t, f.Set(field, value))
	}
}

func validEmployee() map[string]string {
	return map[string]string{
		"codigo_empleado":    "EMP001",
		"nombre":             " Ana ",
		"apellido":           "Pérez",
		"email":              "ana@example.com",
		"fecha_contratacion": "2024-01-15",
		"salario":            "45000.50",
		"departamento_id":    "1",
		"Posicion_id":        "2",
	}
}

func newEmployeeForm(t *testing.T, existing *domain.Employee, onSubmit SubmitFunc[domain.EmployeeInput]) *EmployeeForm {
	t.Helper()
	f := NewEmployeeForm(newValidator(t),
		staticLister[domain.Department]{items: []domain.Department{{ID: 1, Name: "Ventas"}}},
		staticLister[domain.Position]{items: []domain.Position{{ID: 2, Title: "Analista"}}},
		existing, onSubmit, nil)
	require.NoError(t, f.Load(context.Background()))
	return f
}

func TestEmployeeForm_EmailRequiredVersusMalformed(t *testing.T) {
	calls := 0
	f := newEmployeeForm(t, nil, func(context.Context, domain.EmployeeInput) error {
		calls++
		return nil
	})

	values := validEmployee()
	delete(values, "email")
	fillEmployee(t, f, values)

	err := f.Submit(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email es requerido", f.Errors()["email"])

	require.NoError(t, f.Set("email", "no-es-un-email"))
	_, stillThere := f.Errors()["email"]
	require.False(t, stillThere)

	err = f.Submit(context.Background())
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "El email no es válido", f.Errors()["email"])
	require.Zero(t, calls)
}

func TestEmployeeForm_RequiredFields(t *testing.T) {
	f := newEmployeeForm(t, nil, func(context.Context, domain.EmployeeInput) error { return nil })

	err := f.Submit(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	errs := f.Errors()
	for _, field := range []string{"codigo_empleado", "nombre", "apellido", "email", "fecha_contratacion", "salario", "departamento_id", "Posicion_id"} {
		require.Contains(t, errs, field)
	}
	require.NotContains(t, errs, "telefono")
	require.NotContains(t, errs, "fecha_nacimiento")
}

func TestEmployeeForm_SalaryMustBePositive(t *testing.T) {
	f := newEmployeeForm(t, nil, func(context.Context, domain.EmployeeInput) error { return nil })
	values := validEmployee()
	values["salario"] = "-10"
	fillEmployee(t, f, values)

	require.Error(t, f.Submit(context.Background()))
	require.Equal(t, "salario debe ser mayor a 0", f.Errors()["salario"])
}

func TestEmployeeForm_SubmitBuildsInput(t *testing.T) {
	var got domain.EmployeeInput
	f := newEmployeeForm(t, nil, func(_ context.Context, in domain.EmployeeInput) error {
		got = in
		return nil
	})
	require.Equal(t, ModeCreate, f.Mode())
	require.True(t, f.Draft().Active)

	fillEmployee(t, f, validEmployee())
	require.NoError(t, f.Submit(context.Background()))

	require.Equal(t, "Ana", got.FirstName)
	require.Nil(t, got.Phone)
	require.Nil(t, got.BirthDate)
	require.True(t, decimal.RequireFromString("45000.50").Equal(got.Salary))
	require.Equal(t, int64(1), got.DepartmentID)
	require.Equal(t, int64(2), got.PositionID)
	require.True(t, got.Active)
	require.Empty(t, f.Banner())
}

func TestEmployeeForm_BackendErrorBecomesBanner(t *testing.T) {
	backendErr := &apiclient.APIError{Status: 400, Detail: "El código de empleado ya existe"}
	f := newEmployeeForm(t, nil, func(context.Context, domain.EmployeeInput) error { return backendErr })
	fillEmployee(t, f, validEmployee())

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, backendErr)
	require.Equal(t, "El código de empleado ya existe", f.Banner())
	require.False(t, f.Submitting())
	// 草稿保持不变，用户可以修改后重试
	require.Equal(t, "EMP001", f.Draft().Code)
}

func TestEmployeeForm_BlockedWhileLoading(t *testing.T) {
	f := NewEmployeeForm(newValidator(t),
		staticLister[domain.Department]{}, staticLister[domain.Position]{},
		nil, func(context.Context, domain.EmployeeInput) error { return nil }, nil)

	require.True(t, f.Loading())
	require.ErrorIs(t, f.Submit(context.Background()), ErrStillLoading)
}

func TestEmployeeForm_LoadFailureLeavesEmptyOptions(t *testing.T) {
	boom := errors.New("boom")
	f := NewEmployeeForm(newValidator(t),
		staticLister[domain.Department]{err: boom},
		staticLister[domain.Position]{items: []domain.Position{{ID: 2}}},
		nil, func(context.Context, domain.EmployeeInput) error { return nil }, nil)

	require.ErrorIs(t, f.Load(context.Background()), boom)
	require.False(t, f.Loading())
	require.Empty(t, f.Departments())
	require.Empty(t, f.Positions())
	require.ErrorIs(t, f.LoadError(), boom)
}

func TestEmployeeForm_EditPrefillsFromNestedRefs(t *testing.T) {
	phone := "555-1234"
	existing := &domain.Employee{
		ID:         9,
		Code:       "EMP009",
		FirstName:  "Luis",
		LastName:   "Gómez",
		Email:      "luis@example.com",
		Phone:      &phone,
		HireDate:   "2023-05-01",
		Salary:     decimal.RequireFromString("30000"),
		Department: &domain.DepartmentRef{ID: 4, Name: "IT"},
		Position:   &domain.PositionRef{ID: 5, Title: "Dev"},
	}
	f := newEmployeeForm(t, existing, func(context.Context, domain.EmployeeInput) error { return nil })

	d := f.Draft()
	require.Equal(t, ModeEdit, f.Mode())
	require.Equal(t, int64(4), d.DepartmentID)
	require.Equal(t, int64(5), d.PositionID)
	require.Equal(t, "555-1234", d.Phone)
	require.Equal(t, "30000", d.Salary)
	require.False(t, d.Active)
}

func TestForm_ResetKeepsDraftForSameRecord(t *testing.T) {
	v := newValidator(t)
	dept := &domain.Department{ID: 1, Name: "Ventas"}
	f := NewDepartmentForm(v, dept, func(context.Context, domain.DepartmentInput) error { return nil }, nil)

	require.NoError(t, f.Set("nombre", "Ventas y Marketing"))
	f.Reset(&domain.Department{ID: 1, Name: "Ventas"})
	require.Equal(t, "Ventas y Marketing", f.Draft().Name)

	f.Reset(&domain.Department{ID: 2, Name: "Compras"})
	require.Equal(t, "Compras", f.Draft().Name)

	f.Reset(nil)
	require.Equal(t, ModeCreate, f.Mode())
	require.Empty(t, f.Draft().Name)
}

func TestForm_UnknownField(t *testing.T) {
	f := NewDepartmentForm(newValidator(t), nil, func(context.Context, domain.DepartmentInput) error { return nil }, nil)
	require.ErrorIs(t, f.Set("salario", "1"), ErrUnknownField)
}

func TestForm_CancelDoesNotSubmit(t *testing.T) {
	submitted, cancelled := false, false
	f := NewDepartmentForm(newValidator(t), nil,
		func(context.Context, domain.DepartmentInput) error { submitted = true; return nil },
		func() { cancelled = true })

	require.NoError(t, f.Set("nombre", "IT"))
	f.Cancel()
	require.True(t, cancelled)
	require.False(t, submitted)
}

func TestDepartmentForm_EmptyDescriptionIsNull(t *testing.T) {
	var got domain.DepartmentInput
	f := NewDepartmentForm(newValidator(t), nil, func(_ context.Context, in domain.DepartmentInput) error {
		got = in
		return nil
	}, nil)

	require.NoError(t, f.Set("nombre", "  IT  "))
	require.NoError(t, f.Set("descripcion", "   "))
	require.NoError(t, f.Submit(context.Background()))
	require.Equal(t, "IT", got.Name)
	require.Nil(t, got.Description)
}

func TestPositionForm_SalaryRange(t *testing.T) {
	calls := 0
	f := NewPositionForm(newValidator(t), nil, func(context.Context, domain.PositionInput) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, f.Set("titulo", "Gerente"))
	require.NoError(t, f.Set("salario_min", "5000"))
	require.NoError(t, f.Set("salario_max", "3000"))

	err := f.Submit(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "El salario máximo debe ser mayor al mínimo", f.Errors()["salario_max"])
	require.Zero(t, calls)

	require.NoError(t, f.Set("salario_max", "8000"))
	require.NoError(t, f.Submit(context.Background()))
	require.Equal(t, 1, calls)
}

func TestPositionForm_ZeroSalaryBounds(t *testing.T) {
	var got domain.PositionInput
	f := NewPositionForm(newValidator(t), nil, func(_ context.Context, in domain.PositionInput) error {
		got = in
		return nil
	}, nil)

	require.NoError(t, f.Set("titulo", "Voluntario"))
	require.NoError(t, f.Set("salario_min", "0"))
	require.NoError(t, f.Set("salario_max", "0"))
	require.NoError(t, f.Submit(context.Background()))
	require.True(t, got.SalaryMin.Valid)
	require.True(t, got.SalaryMin.Decimal.IsZero())
	require.True(t, got.SalaryMax.Decimal.IsZero())

	require.NoError(t, f.Set("salario_min", "-1"))
	require.Error(t, f.Submit(context.Background()))
	require.Equal(t, "salario_min no puede ser negativo", f.Errors()["salario_min"])
}

func TestPositionForm_OptionalSalaries(t *testing.T) {
	var got domain.PositionInput
	f := NewPositionForm(newValidator(t), nil, func(_ context.Context, in domain.PositionInput) error {
		got = in
		return nil
	}, nil)

	require.NoError(t, f.Set("titulo", "Pasante"))
	require.NoError(t, f.Submit(context.Background()))
	require.False(t, got.SalaryMin.Valid)
	require.False(t, got.SalaryMax.Valid)
}

func TestLoginForm(t *testing.T) {
	var user string
	f := NewLoginForm(newValidator(t), func(_ context.Context, username, _ string) error {
		user = username
		if username == "ana" {
			return nil
		}
		return &apiclient.APIError{Status: 401, Detail: "Usuario o contraseña incorrectos"}
	})

	err := f.Submit(context.Background(), LoginDraft{})
	require.Error(t, err)
	require.Contains(t, f.Errors(), "username")
	require.Contains(t, f.Errors(), "password")
	require.Empty(t, user)

	require.Error(t, f.Submit(context.Background(), LoginDraft{Username: "bob", Password: "x"}))
	require.Equal(t, "Usuario o contraseña incorrectos", f.Banner())

	require.NoError(t, f.Submit(context.Background(), LoginDraft{Username: " ana ", Password: "x"}))
	require.Equal(t, "ana", user)
	require.Empty(t, f.Banner())
	require.Empty(t, f.Errors())
}

func TestRegisterForm(t *testing.T) {
	var got domain.Registration
	f := NewRegisterForm(newValidator(t), func(_ context.Context, reg domain.Registration) error {
		got = reg
		return nil
	})

	err := f.Submit(context.Background(), domain.Registration{Username: "ab", Email: "x", Password: "123"})
	require.Error(t, err)
	require.Contains(t, f.Errors(), "username")
	require.Contains(t, f.Errors(), "email")
	require.Contains(t, f.Errors(), "password")

	blank := "  "
	require.NoError(t, f.Submit(context.Background(), domain.Registration{
		Username: "ana", Email: "ana@example.com", Password: "secreto", FullName: &blank,
	}))
	require.Nil(t, got.FullName)
}
