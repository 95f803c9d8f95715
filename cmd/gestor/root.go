package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gestor-empleados/frontend/internal/app"
	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// cli 在各个子命令之间共享，app 在 PersistentPreRunE 中创建
type cli struct {
	app     *app.App
	raw     io.Reader
	in      *bufio.Reader
	verbose bool
}

func newCLI(in io.Reader) *cli {
	return &cli{raw: in, in: bufio.NewReader(in)}
}

func (c *cli) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gestor",
		Short:         "Sistema de Gestión de Empleados",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "mostrar registros de depuración")

	cmd.AddCommand(newLoginCmd(c))
	cmd.AddCommand(newLogoutCmd(c))
	cmd.AddCommand(newRegisterCmd(c))
	cmd.AddCommand(newWhoamiCmd(c))
	cmd.AddCommand(newOpenCmd(c))
	cmd.AddCommand(newEmployeesCmd(c))
	cmd.AddCommand(newDepartmentsCmd(c))
	cmd.AddCommand(newPositionsCmd(c))
	return cmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("无法加载配置: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.app, err = app.New(cmd.Context(), cfg, logger, cmd.OutOrStdout())
	return err
}

// readLine 读取一行输入，用于删除确认和非终端输入的密码
func (c *cli) readLine(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword 在终端上不回显密码，输入不是终端时按普通行读取
func (c *cli) readPassword(out io.Writer, prompt string) (string, error) {
	f, ok := c.raw.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.readLine(out, prompt)
	}

	fmt.Fprint(out, prompt)
	password, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(password)), nil
}

func (c *cli) confirm(out io.Writer) func(prompt string) bool {
	return func(prompt string) bool {
		answer, err := c.readLine(out, prompt+" [s/N]: ")
		if err != nil {
			return false
		}
		switch strings.ToLower(answer) {
		case "s", "si", "sí", "y", "yes":
			return true
		}
		return false
	}
}

// execute 运行命令；cobra 在 RunE 出错时不会调用 PersistentPostRun，所以在这里统一释放 app
func (c *cli) execute(ctx context.Context, cmd *cobra.Command) error {
	defer c.close()
	return cmd.ExecuteContext(ctx)
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
	}
}

func Execute() {
	c := newCLI(os.Stdin)
	if err := c.execute(context.Background(), c.newRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
