package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/app"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/form"
	"github.com/gestor-empleados/frontend/internal/page"
	"github.com/gestor-empleados/frontend/internal/shell"
	"github.com/spf13/cobra"
)

// editor 是命令行需要的表单操作，三种实体的表单都满足它
type editor interface {
	Set(field, value string) error
	Submit(ctx context.Context) error
	Errors() map[string]string
	Banner() string
}

type entityCommand[T domain.Entity, I any] struct {
	use     string
	short   string
	route   string
	fields  []string
	page    func(a *app.App) *page.ListPage[T, I]
	get     func(a *app.App) func(ctx context.Context, id int64) (T, error)
	newForm func(ctx context.Context, a *app.App, w io.Writer, existing *T, onSubmit form.SubmitFunc[I]) editor
}

func newEmployeesCmd(c *cli) *cobra.Command {
	return newEntityCmd(c, entityCommand[domain.Employee, domain.EmployeeInput]{
		use:    "employees",
		short:  "Administrar empleados",
		route:  shell.EmployeesPath,
		fields: form.EmployeeFields,
		page:   func(a *app.App) *page.EmployeesPage { return a.EmployeesPage },
		get:    func(a *app.App) func(context.Context, int64) (domain.Employee, error) { return a.Employees.Get },
		newForm: func(ctx context.Context, a *app.App, w io.Writer, existing *domain.Employee, onSubmit form.SubmitFunc[domain.EmployeeInput]) editor {
			f := form.NewEmployeeForm(a.Validator, a.Departments, a.Positions, existing, onSubmit, nil)
			// 选项加载失败时表单仍然可以提交，只是没有可选列表
			if err := f.Load(ctx); err == nil {
				shell.WriteEmployeeFormOptions(w, f)
			}
			return f
		},
	})
}

func newDepartmentsCmd(c *cli) *cobra.Command {
	return newEntityCmd(c, entityCommand[domain.Department, domain.DepartmentInput]{
		use:    "departments",
		short:  "Administrar departamentos",
		route:  shell.DepartmentsPath,
		fields: form.DepartmentFields,
		page:   func(a *app.App) *page.DepartmentsPage { return a.DepartmentsPage },
		get:    func(a *app.App) func(context.Context, int64) (domain.Department, error) { return a.Departments.Get },
		newForm: func(_ context.Context, a *app.App, _ io.Writer, existing *domain.Department, onSubmit form.SubmitFunc[domain.DepartmentInput]) editor {
			return form.NewDepartmentForm(a.Validator, existing, onSubmit, nil)
		},
	})
}

func newPositionsCmd(c *cli) *cobra.Command {
	return newEntityCmd(c, entityCommand[domain.Position, domain.PositionInput]{
		use:    "positions",
		short:  "Administrar posiciones",
		route:  shell.PositionsPath,
		fields: form.PositionFields,
		page:   func(a *app.App) *page.PositionsPage { return a.PositionsPage },
		get:    func(a *app.App) func(context.Context, int64) (domain.Position, error) { return a.Positions.Get },
		newForm: func(_ context.Context, a *app.App, _ io.Writer, existing *domain.Position, onSubmit form.SubmitFunc[domain.PositionInput]) editor {
			return form.NewPositionForm(a.Validator, existing, onSubmit, nil)
		},
	})
}

func newEntityCmd[T domain.Entity, I any](c *cli, ec entityCommand[T, I]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   ec.use,
		Short: ec.short,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Mostrar la lista",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Navigator.Navigate(cmd.Context(), ec.route)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Mostrar un registro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.requireSession(cmd); err != nil {
				return err
			}
			item, err := ec.get(c.app)(cmd.Context(), id)
			if err != nil {
				return c.afterRequest(cmd, err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(item)
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Crear un registro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := mountPage(c, cmd, ec)
			if err != nil {
				return err
			}
			if err := p.OpenCreate(); err != nil {
				return err
			}
			return submitForm(c, cmd, ec, p, nil)
		},
	}
	addFieldFlags(create, ec.fields)
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Editar un registro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := mountPage(c, cmd, ec)
			if err != nil {
				return err
			}
			existing, err := p.OpenEdit(id)
			if err != nil {
				return err
			}
			return submitForm(c, cmd, ec, p, &existing)
		},
	}
	addFieldFlags(update, ec.fields)
	cmd.AddCommand(update)

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar un registro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := mountPage(c, cmd, ec)
			if err != nil {
				return err
			}

			confirm := page.ConfirmFunc(c.confirm(cmd.OutOrStdout()))
			if yes {
				confirm = func(string) bool { return true }
			}
			deleted, err := p.Delete(cmd.Context(), id, confirm)
			if !deleted && err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Operación cancelada")
				return nil
			}
			if navErr := c.app.Navigator.Navigate(cmd.Context(), ec.route); err == nil {
				err = navErr
			}
			return err
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	cmd.AddCommand(del)

	return cmd
}

// mountPage 获取列表并让页面进入 Ready，创建、编辑和删除都从这里开始
func mountPage[T domain.Entity, I any](c *cli, cmd *cobra.Command, ec entityCommand[T, I]) (*page.ListPage[T, I], error) {
	if err := c.requireSession(cmd); err != nil {
		return nil, err
	}
	p := ec.page(c.app)
	if err := p.Mount(cmd.Context()); err != nil {
		return nil, c.afterRequest(cmd, err)
	}
	return p, nil
}

// submitForm 把命令行上出现的字段写入表单，再以页面的 Save 作为 onSubmit 提交
func submitForm[T domain.Entity, I any](c *cli, cmd *cobra.Command, ec entityCommand[T, I], p *page.ListPage[T, I], existing *T) error {
	out := cmd.OutOrStdout()
	f := ec.newForm(cmd.Context(), c.app, out, existing, p.Save)

	for _, field := range ec.fields {
		if !cmd.Flags().Changed(field) {
			continue
		}
		value, err := cmd.Flags().GetString(field)
		if err != nil {
			return err
		}
		if err := f.Set(field, value); err != nil {
			return err
		}
	}

	if err := f.Submit(cmd.Context()); err != nil {
		shell.WriteFormState(out, f.Banner(), f.Errors())
		return c.afterRequest(cmd, err)
	}
	return c.app.Navigator.Navigate(cmd.Context(), ec.route)
}

func (c *cli) requireSession(cmd *cobra.Command) error {
	if c.app.Sessions.IsAuthenticated() {
		return nil
	}
	_ = c.app.Navigator.Navigate(cmd.Context(), shell.LoginPath)
	return errNotLoggedIn
}

// afterRequest 在会话过期时显示登录页，错误本身原样返回
func (c *cli) afterRequest(cmd *cobra.Command, err error) error {
	if errors.Is(err, apiclient.ErrSessionExpired) {
		_ = c.app.Navigator.Navigate(cmd.Context(), shell.LoginPath)
	}
	return err
}

func addFieldFlags(cmd *cobra.Command, fields []string) {
	for _, field := range fields {
		cmd.Flags().String(field, "", field)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %s", s)
	}
	return id, nil
}
