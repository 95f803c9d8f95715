package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/form"
	"github.com/gestor-empleados/frontend/internal/shell"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("no hay una sesión activa, ejecute gestor login")

type loginOptions struct {
	Username string
	Password string
}

func newLoginCmd(c *cli) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login --username <usuario>",
		Short: "Iniciar sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			out := cmd.OutOrStdout()

			if opts.Password == "" && opts.Username != "" {
				password, err := c.readPassword(out, "Contraseña: ")
				if err != nil {
					return err
				}
				opts.Password = password
			}

			f := form.NewLoginForm(a.Validator, func(ctx context.Context, username, password string) error {
				_, err := a.Auth.Login(ctx, username, password)
				return err
			})
			err := f.Submit(cmd.Context(), form.LoginDraft{Username: opts.Username, Password: opts.Password})
			if err != nil {
				shell.WriteFormState(out, f.Banner(), f.Errors())
				return err
			}

			if u := a.Sessions.User(); u != nil {
				fmt.Fprintf(out, "Bienvenido, %s\n\n", u.DisplayName())
			}
			return a.Navigator.Navigate(cmd.Context(), shell.HomePath)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "nombre de usuario")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "contraseña (se pide por la entrada estándar si se omite)")

	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return c.app.Navigator.Navigate(cmd.Context(), shell.LoginPath)
		},
	}
}

type registerOptions struct {
	Username string
	Email    string
	Password string
	FullName string
}

func newRegisterCmd(c *cli) *cobra.Command {
	var opts registerOptions

	cmd := &cobra.Command{
		Use:   "register --username <usuario> --email <correo>",
		Short: "Crear una cuenta nueva",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			out := cmd.OutOrStdout()

			if opts.Password == "" && opts.Username != "" {
				password, err := c.readPassword(out, "Contraseña: ")
				if err != nil {
					return err
				}
				opts.Password = password
			}

			reg := domain.Registration{
				Username: opts.Username,
				Email:    opts.Email,
				Password: opts.Password,
			}
			if opts.FullName != "" {
				reg.FullName = &opts.FullName
			}

			f := form.NewRegisterForm(a.Validator, func(ctx context.Context, reg domain.Registration) error {
				_, err := a.Auth.Register(ctx, reg)
				return err
			})
			if err := f.Submit(cmd.Context(), reg); err != nil {
				shell.WriteFormState(out, f.Banner(), f.Errors())
				return err
			}

			// 注册成功后不自动登录
			fmt.Fprintln(out, "Cuenta creada correctamente. Ahora puede iniciar sesión.")
			fmt.Fprintln(out)
			return a.Navigator.Navigate(cmd.Context(), shell.LoginPath)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "nombre de usuario")
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "correo electrónico")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "contraseña (se pide por la entrada estándar si se omite)")
	cmd.Flags().StringVar(&opts.FullName, "full-name", "", "nombre completo")

	return cmd
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar el usuario de la sesión actual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			out := cmd.OutOrStdout()
			if !a.Auth.IsAuthenticated() {
				return errNotLoggedIn
			}

			u, err := a.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Sessions.SetUser(cmd.Context(), u); err != nil {
				a.Logger.Warn("无法保存用户信息", "error", err)
			}

			fmt.Fprintf(out, "Usuario: %s\n", u.Username)
			fmt.Fprintf(out, "Email: %s\n", u.Email)
			if u.FullName != nil {
				fmt.Fprintf(out, "Nombre: %s\n", *u.FullName)
			}
			if u.IsSuperuser {
				fmt.Fprintln(out, "Administrador: sí")
			}
			return nil
		},
	}
}

func newOpenCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "open [ruta]",
		Short: "Mostrar una pantalla (/, /employees, /departments, /positions, /login, /register)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := shell.HomePath
			if len(args) == 1 {
				path = args[0]
			}
			return c.app.Navigator.Navigate(cmd.Context(), path)
		},
	}
}
