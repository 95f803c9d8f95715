package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/form"
	"github.com/gestor-empleados/frontend/internal/page"
	"github.com/gestor-empleados/frontend/internal/service"
	"github.com/gestor-empleados/frontend/internal/session"
	"github.com/gestor-empleados/frontend/internal/shell"
	"github.com/redis/go-redis/v9"
)

// App 把客户端的各个部分连接起来，命令行的每个子命令都从这里取用
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Sessions  *session.Manager
	Client    *apiclient.Client
	Validator *form.Validator

	Auth        *service.Auth
	Employees   *service.Resource[domain.Employee, domain.EmployeeInput]
	Departments *service.Resource[domain.Department, domain.DepartmentInput]
	Positions   *service.Resource[domain.Position, domain.PositionInput]

	EmployeesPage   *page.EmployeesPage
	DepartmentsPage *page.DepartmentsPage
	PositionsPage   *page.PositionsPage
	Dashboard       *page.Dashboard

	Navigator *shell.Navigator

	closers   []func() error
	disposers []func()
	closed    bool
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	createMode, err := page.ParseCreateMode(cfg.UI.CreateMode)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger}

	/**********************************************
	 * 会话存储
	 **********************************************/
	store, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}
	a.Sessions, err = session.NewManager(ctx, store)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("无法加载会话: %w", err)
	}

	/**********************************************
	 * API 客户端与服务
	 **********************************************/
	a.Client = apiclient.New(cfg.API.BaseURL, a.Sessions,
		apiclient.WithTimeout(time.Duration(cfg.API.Timeout)*time.Second),
		apiclient.WithLogger(logger),
	)
	a.Auth = service.NewAuth(a.Client, a.Sessions)
	a.Employees = service.NewEmployees(a.Client)
	a.Departments = service.NewDepartments(a.Client)
	a.Positions = service.NewPositions(a.Client)

	a.Validator, err = form.NewValidator()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("无法创建表单校验器: %w", err)
	}

	/**********************************************
	 * 页面与导航
	 **********************************************/
	settings := page.Settings{
		NoticeDuration: cfg.UI.NoticeDuration,
		CreateMode:     createMode,
		Logger:         logger,
	}
	a.EmployeesPage = page.NewEmployeesPage(a.Employees, settings)
	a.DepartmentsPage = page.NewDepartmentsPage(a.Departments, settings)
	a.PositionsPage = page.NewPositionsPage(a.Positions, settings)
	a.Dashboard = page.NewDashboard(a.Employees, a.Departments, a.Positions)
	a.disposers = []func(){a.EmployeesPage.Dispose, a.DepartmentsPage.Dispose, a.PositionsPage.Dispose, a.Dashboard.Dispose}

	nav := shell.NewNavigator(a.Sessions, out)
	nav.Public(shell.LoginPath, shell.LoginView())
	nav.Public(shell.RegisterPath, shell.RegisterView())
	nav.Protected(shell.HomePath, "Inicio", shell.DashboardView(a.Dashboard))
	nav.Protected(shell.EmployeesPath, "Empleados",
		shell.ListView(a.EmployeesPage, shell.EmployeeColumns(), "No hay empleados registrados"))
	nav.Protected(shell.DepartmentsPath, "Departamentos",
		shell.ListView(a.DepartmentsPage, shell.DepartmentColumns(), "No hay departamentos registrados"))
	nav.Protected(shell.PositionsPath, "Posiciones",
		shell.ListView(a.PositionsPage, shell.PositionColumns(), "No hay posiciones registradas"))
	a.Navigator = nav

	// 会话过期和主动登出都回到登录页
	a.Client.SetSessionExpiredHook(func() { nav.Redirect(shell.LoginPath) })
	a.Auth.SetLogoutHook(func() { nav.Redirect(shell.LoginPath) })

	return a, nil
}

func (a *App) openStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			ReadTimeout:  time.Duration(cfg.Redis.OperationTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Redis.OperationTimeout) * time.Second,
		})
		a.closers = append(a.closers, rdb.Close)
		return session.NewRedisStore(rdb, cfg.Redis.KeyPrefix), nil
	default:
		path := cfg.Session.File
		if path == "" {
			var err error
			path, err = session.DefaultFilePath()
			if err != nil {
				return nil, fmt.Errorf("无法确定会话文件路径: %w", err)
			}
		}
		return session.NewFileStore(path), nil
	}
}

// Close 释放页面计时器和外部连接
func (a *App) Close() {
	for _, dispose := range a.disposers {
		dispose()
	}
	a.disposers = nil
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.Logger.Warn("关闭连接失败", "error", err)
		}
	}
	a.closers = nil
	a.closed = true
}

func (a *App) Closed() bool {
	return a.closed
}
