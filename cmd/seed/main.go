package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gestor-empleados/frontend/internal/apiclient"
	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/gestor-empleados/frontend/internal/form"
	"github.com/gestor-empleados/frontend/internal/seed"
	"github.com/gestor-empleados/frontend/internal/service"
	"github.com/gestor-empleados/frontend/internal/session"
	"github.com/gestor-empleados/frontend/internal/utils"
)

func main() {
	var op int
	var n int
	var file string
	var username string
	var password string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机部门, 2: 插入随机职位, 3: 插入随机员工, 4: 注册随机用户, 5: 从 CSV 导入员工)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&file, "file", "", "要导入的 CSV 文件")
	flag.StringVar(&username, "username", "", "登录用户名，默认使用初始管理员")
	flag.StringVar(&password, "password", "", "登录密码，默认使用初始管理员的密码")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if username == "" {
		username = cfg.Stub.InitialAdmin.Username
		password = cfg.Stub.InitialAdmin.Password
	}

	// 会话只在本次运行中有效，不覆盖命令行客户端保存的会话
	ctx := context.Background()
	sessions, err := session.NewManager(ctx, session.NewMemoryStore())
	if err != nil {
		logger.Error("无法创建会话", slog.String("error", err.Error()))
		os.Exit(1)
	}
	client := apiclient.New(cfg.API.BaseURL, sessions,
		apiclient.WithTimeout(time.Duration(cfg.API.Timeout)*time.Second),
		apiclient.WithLogger(logger),
	)
	auth := service.NewAuth(client, sessions)
	departments := service.NewDepartments(client)
	positions := service.NewPositions(client)
	employees := service.NewEmployees(client)

	if op != 4 {
		if _, err := auth.Login(ctx, username, password); err != nil {
			logger.Error("无法登录", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的部门数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				if _, err := departments.Create(ctx, utils.GenerateRandomDepartment()); err != nil {
					slog.Error("无法插入部门", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入部门成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的职位数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				if _, err := positions.Create(ctx, utils.GenerateRandomPosition()); err != nil {
					slog.Error("无法插入职位", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入职位成功", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		// 先获取所有部门和职位
		depts, err := departments.List(ctx)
		if err != nil {
			slog.Error("无法获取部门", slog.String("error", err.Error()))
			return
		}
		poss, err := positions.List(ctx)
		if err != nil {
			slog.Error("无法获取职位", slog.String("error", err.Error()))
			return
		}
		if len(depts) == 0 || len(poss) == 0 {
			slog.Error("请先插入部门和职位")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			// 随机选一个部门和职位
			dept := depts[rand.Intn(len(depts))]
			pos := poss[rand.Intn(len(poss))]

			if _, err := employees.Create(ctx, utils.GenerateRandomEmployee(&dept, &pos)); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入员工成功", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				reg := utils.GenerateRandomRegistration("empresa.com")
				if _, err := auth.Register(ctx, reg); err != nil {
					slog.Error("无法注册用户", slog.String("error", err.Error()))
					continue
				}

				slog.Info("已注册用户", "username", reg.Username, "password", reg.Password)
				cnt--
			}

			slog.Info("注册用户成功", slog.Int("count", n-cnt))
		}
	case 5:
		if file == "" {
			slog.Error("请使用 -file 指定 CSV 文件")
			return
		}

		f, err := os.Open(file)
		if err != nil {
			slog.Error("打开文件失败", "error", err)
			return
		}
		defer f.Close()

		validator, err := form.NewValidator()
		if err != nil {
			slog.Error("无法创建表单校验器", "error", err)
			return
		}

		importer := &seed.Importer{
			Validator:   validator,
			Departments: departments,
			Positions:   positions,
			Employees:   employees,
		}
		if _, err := importer.ImportEmployees(ctx, f); err != nil {
			slog.Error("导入员工失败", "error", err)
		}
	default:
		slog.Error("指定的操作非法")
	}
}
