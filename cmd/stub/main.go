package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/handler"
	"github.com/gestor-empleados/frontend/internal/repository"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("配置无效", "error", err)
		return
	}

	/**********************************************
	 * 创建 repository
	 **********************************************/
	var repo repository.Repository
	if cfg.Stub.Database.DSN == "" {
		logger.Info("未配置数据库，使用内存存储")
		repo = repository.NewMemoryRepository()
	} else {
		dbpool, err := sql.Open("pgx", cfg.Stub.Database.DSN)
		if err != nil {
			logger.Error("无法创建数据库连接池", "error", err)
			return
		}
		defer dbpool.Close()

		dbpool.SetMaxOpenConns(cfg.Stub.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Stub.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Stub.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Stub.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
		if err := dbpool.PingContext(ctx); err != nil {
			logger.Error("无法连接到数据库", "error", err)
			return
		}

		pg := repository.NewPostgresRepository(dbpool, time.Duration(cfg.Stub.Database.QueryTimeout)*time.Second)
		if err := pg.Migrate(); err != nil {
			logger.Error("无法创建数据表", "error", err)
			return
		}
		repo = pg
	}

	/**********************************************
	 * 确保存在初始管理员
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Stub.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("无法生成初始管理员密码哈希", "error", err)
		return
	}
	initialAdmin := &domain.User{
		Username:     cfg.Stub.InitialAdmin.Username,
		Email:        cfg.Stub.InitialAdmin.Email,
		PasswordHash: string(passwordHash),
		IsSuperuser:  true,
	}
	if err := repo.CreateUser(initialAdmin); err != nil {
		var dupErr *repository.DuplicateError
		switch {
		case errors.As(err, &dupErr):
			// 初始管理员已经存在，不处理
		default:
			logger.Error("无法创建初始管理员", "error", err)
			return
		}
	}

	/**********************************************
	 * 创建 handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo)
	if err != nil {
		logger.Error("无法创建 handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * 启动 HTTP 服务器
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Stub.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Stub.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Stub.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Stub.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("正在启动服务器...", "port", cfg.Stub.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("无法启动服务器", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Stub.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("关闭服务器失败", slog.String("error", err.Error()))
	}
	logger.Info("服务器已成功关闭")
}
