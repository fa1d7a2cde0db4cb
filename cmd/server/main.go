package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/api"
	"github.com/uolflash/flash-feed-backend/internal/bonus"
	"github.com/uolflash/flash-feed-backend/internal/feed"
	"github.com/uolflash/flash-feed-backend/internal/generator"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/platform/config"
	"github.com/uolflash/flash-feed-backend/internal/platform/database"
	"github.com/uolflash/flash-feed-backend/internal/platform/health"
	"github.com/uolflash/flash-feed-backend/internal/platform/shutdown"
	"github.com/uolflash/flash-feed-backend/internal/platform/startup"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/store"
	"github.com/uolflash/flash-feed-backend/internal/wallet"
	"github.com/uolflash/flash-feed-backend/pkg/lifecycle"
	"github.com/uolflash/flash-feed-backend/pkg/token"
)

func main() {
	token.GenerateSecretKey()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 内容生成客户端接线。没有API Key时Feed只使用兜底内容。
	gen := generator.NewClient(cfg.Generator)
	feed.Configure(gen)
	// store模块与feed共用同一个生成客户端
	store.Configure(gen)

	// 5. 会话回收钩子接线：会话过期时各模块清理自己的状态
	session.RegisterEvictHook(wallet.RemoveSession)
	session.RegisterEvictHook(interaction.RemoveSession)
	session.RegisterEvictHook(feed.RemoveSession)
	session.RegisterEvictHook(bonus.RemoveSession)

	// 6. 创建生命周期管理器并启动后台服务
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()

	healthHandle, err := gracefulManager.NewServiceHandle("RedisHealthChecker")
	if err != nil {
		panic(fmt.Sprintf("注册健康检查器失败: %v", err))
	}
	health.StartRedisHealthCheck(healthHandle)

	janitorHandle, err := gracefulManager.NewServiceHandle("SessionJanitor")
	if err != nil {
		panic(fmt.Sprintf("注册会话回收器失败: %v", err))
	}
	session.StartJanitor(janitorHandle, time.Duration(cfg.Session.IdleTTLMinutes)*time.Minute)

	// 7. 装配HTTP服务器
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 8. 阻塞等待停机信号
	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager)
	coordinator.ListenForSignalsAndShutdown(server)
}
