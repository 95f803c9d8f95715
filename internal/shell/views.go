package shell

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/form"
	"github.com/gestor-empleados/frontend/internal/page"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

type Column[T any] struct {
	Header string
	Value  func(T) string
}

// ListView 在第一次渲染时获取数据，之后直接使用页面中的列表
func ListView[T domain.Entity, I any](p *page.ListPage[T, I], columns []Column[T], empty string) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		if p.Status() == page.StatusLoading {
			fmt.Fprintf(w, "Cargando %s...\n", p.Title())
			_ = p.Mount(ctx)
		}

		if p.Status() == page.StatusFailed {
			fmt.Fprintf(w, "Error: %s\n", p.LoadError())
			fmt.Fprintln(w, "Puede reintentar la carga.")
			return fmt.Errorf("%s: %s", p.Title(), p.LoadError())
		}

		fmt.Fprintf(w, "%s\n\n", p.Title())
		WriteNotice(w, p.Notice())
		WriteSummary(w, p.Summary())

		items := p.Items()
		if len(items) == 0 {
			fmt.Fprintln(w, empty)
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprint(tw, "ID")
		for _, c := range columns {
			fmt.Fprintf(tw, "\t%s", c.Header)
		}
		fmt.Fprintln(tw)
		for _, item := range items {
			fmt.Fprint(tw, strconv.FormatInt(item.EntityID(), 10))
			for _, c := range columns {
				fmt.Fprintf(tw, "\t%s", c.Value(item))
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	})
}

func WriteNotice(w io.Writer, n *page.Notice) {
	if n == nil {
		return
	}
	if n.Kind == page.NoticeError {
		fmt.Fprintf(w, "✗ %s\n\n", n.Text)
		return
	}
	fmt.Fprintf(w, "✓ %s\n\n", n.Text)
}

func WriteSummary(w io.Writer, s page.Summary) {
	if s.HasActivity {
		fmt.Fprintf(w, "Total: %d  Activos: %d  Inactivos: %d\n\n", s.Total, s.Active, s.Inactive)
		return
	}
	fmt.Fprintf(w, "Total: %d\n\n", s.Total)
}

func EmployeeColumns() []Column[domain.Employee] {
	return []Column[domain.Employee]{
		{Header: "Código", Value: func(e domain.Employee) string { return e.Code }},
		{Header: "Nombre Completo", Value: func(e domain.Employee) string { return e.DisplayName() }},
		{Header: "Email", Value: func(e domain.Employee) string { return e.Email }},
		{Header: "Departamento", Value: func(e domain.Employee) string {
			if e.Department == nil || e.Department.Name == "" {
				return "Sin asignar"
			}
			return e.Department.Name
		}},
		{Header: "Posición", Value: func(e domain.Employee) string {
			if e.Position == nil || e.Position.Title == "" {
				return "Sin asignar"
			}
			return e.Position.Title
		}},
		{Header: "Salario", Value: func(e domain.Employee) string { return FormatMoney(e.Salary) }},
		{Header: "Estado", Value: func(e domain.Employee) string {
			if e.Active {
				return "Activo"
			}
			return "Inactivo"
		}},
	}
}

func DepartmentColumns() []Column[domain.Department] {
	return []Column[domain.Department]{
		{Header: "Nombre", Value: func(d domain.Department) string { return d.Name }},
		{Header: "Descripción", Value: func(d domain.Department) string { return deref(d.Description) }},
		{Header: "Creado", Value: func(d domain.Department) string {
			if d.CreatedAt == nil {
				return "-"
			}
			return d.CreatedAt.Format("2006-01-02")
		}},
	}
}

func PositionColumns() []Column[domain.Position] {
	return []Column[domain.Position]{
		{Header: "Título", Value: func(p domain.Position) string { return p.Title }},
		{Header: "Descripción", Value: func(p domain.Position) string { return deref(p.Description) }},
		{Header: "Salario Mín.", Value: func(p domain.Position) string { return formatNullMoney(p.SalaryMin) }},
		{Header: "Salario Máx.", Value: func(p domain.Position) string { return formatNullMoney(p.SalaryMax) }},
	}
}

func DashboardView(d *page.Dashboard) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Cargando resumen...")
		if err := d.Mount(ctx); err != nil {
			fmt.Fprintf(w, "Error: %s\n", d.LoadError())
			return err
		}

		c := d.Counts()
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Empleados\t%d\t(%d activos)\n", c.Employees, c.ActiveEmployees)
		fmt.Fprintf(tw, "Departamentos\t%d\n", c.Departments)
		fmt.Fprintf(tw, "Posiciones\t%d\n", c.Positions)
		return tw.Flush()
	})
}

func LoginView() View {
	return ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Iniciar Sesión - Sistema de Gestión de Empleados")
		fmt.Fprintln(w, "  gestor login --username <usuario>")
		fmt.Fprintln(w, "¿No tienes cuenta? gestor register")
		return nil
	})
}

func RegisterView() View {
	return ViewFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Crear cuenta - Regístrate para administrar empleados")
		fmt.Fprintln(w, "  gestor register --username <usuario> --email <correo> [--full-name <nombre>]")
		return nil
	})
}

// WriteFormState 显示表单的字段错误和顶部横幅
func WriteFormState(w io.Writer, banner string, errs map[string]string) {
	if banner != "" {
		fmt.Fprintf(w, "✗ %s\n", banner)
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}

// WriteEmployeeFormOptions 列出员工表单中可选的部门和职位，加载中时显示阻塞状态
func WriteEmployeeFormOptions(w io.Writer, f *form.EmployeeForm) {
	if f.Loading() {
		fmt.Fprintln(w, "Cargando formulario...")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "departamento_id\tDepartamento")
	for _, d := range f.Departments() {
		fmt.Fprintf(tw, "%d\t%s\n", d.ID, d.Name)
	}
	fmt.Fprintln(tw, "Posicion_id\tPosición")
	for _, p := range f.Positions() {
		fmt.Fprintf(tw, "%d\t%s\n", p.ID, p.Title)
	}
	_ = tw.Flush()
}

// FormatMoney 按 es-AR 格式显示金额，只有整数部分交给 printer 分组，不经过浮点数
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	whole, cents, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// 超出 int64 的金额不分组
		return "$" + sign + whole + "," + cents
	}
	return "$" + sign + printer.Sprintf("%d", n) + "," + cents
}

func formatNullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return FormatMoney(d.Decimal)
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
