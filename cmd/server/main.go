package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/inshionfu/gpt-mng-web/config"
	"github.com/inshionfu/gpt-mng-web/internal/api/handler"
	"github.com/inshionfu/gpt-mng-web/internal/api/router"
	"github.com/inshionfu/gpt-mng-web/internal/repository"
	"github.com/inshionfu/gpt-mng-web/internal/service"
	applogger "github.com/inshionfu/gpt-mng-web/pkg/logger"
	"github.com/inshionfu/gpt-mng-web/pkg/redis"
	"github.com/inshionfu/gpt-mng-web/pkg/upstream"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gpt-mng-web",
	Short:         "Prompt管理系统 控制台服务",
	Long:          "为 MMU 与 Prompt 管理控制台提供视图数据，代理 GPT 管理后台接口。",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(configPath)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	// 1. 加载配置
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：连接失败时降级为进程内限流，不中断启动）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，写操作限流降级为进程内计数", zap.Error(err))
			rdb = nil
		}
	}

	// 4. 依赖注入: Upstream → Repository → Service → Handler
	client := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, logger)
	repo := repository.NewRepository(client)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(svc)

	// 5. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, h, rdb, logger)

	// 6. 启动 HTTP 服务器（优雅关闭）
	// 后端接口不设超时时，写超时也不应截断仍在等待后端的请求
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if cfg.Upstream.Timeout > 0 {
		srv.WriteTimeout = cfg.Upstream.Timeout + 15*time.Second
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 7. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	case err, ok := <-serveErr:
		if ok {
			logger.Error("HTTP 服务器异常", zap.Error(err))
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
	return nil
}
