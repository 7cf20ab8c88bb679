package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sou930/HG-SNS/config"
	"github.com/Sou930/HG-SNS/internal/api/auth"
	"github.com/Sou930/HG-SNS/internal/api/feed"
	"github.com/Sou930/HG-SNS/internal/api/user"
	"github.com/Sou930/HG-SNS/internal/common"
	"github.com/Sou930/HG-SNS/internal/middleware"
	"github.com/Sou930/HG-SNS/internal/oauth"
	"github.com/Sou930/HG-SNS/internal/repository/mysql"
	"github.com/Sou930/HG-SNS/internal/service"
	"github.com/Sou930/HG-SNS/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接，启动阶段允许重试
	err = common.WithRetry(func() error {
		return db.Ping()
	}, 3)
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 执行建表语句
	if err := mysql.Migrate(db, "schema.sql"); err != nil {
		util.Logger.Fatal("初始化数据库结构失败", zap.Error(err))
	}

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("snowflake", util.ValidateSnowflake)
	}

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	feedRepo := mysql.NewFeedRepository(db)

	discordClient := oauth.NewDiscordClient()
	authService := service.NewAuthService(discordClient, userRepo)
	userService := service.NewUserService(userRepo)
	feedService := service.NewFeedService(feedRepo)

	authHandler := auth.NewAuthHandler(authService)
	userHandler := user.NewUserHandler(userService, feedService)
	feedHandler := feed.NewFeedHandler(feedService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())

	// 添加中间件
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.AppConfig.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 认证回调，无需登录
	r.GET("/auth/callback", authHandler.Callback)

	// 需要认证的路由
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.GET("/users/me", userHandler.Me)
		authorized.GET("/users", userHandler.List)
		authorized.GET("/users/:id", userHandler.GetByID)
		authorized.GET("/users/:id/posts", userHandler.GetUserPosts)

		authorized.GET("/posts", feedHandler.ListTimeline)
		authorized.POST("/posts", feedHandler.CreatePost)
		authorized.DELETE("/posts/:id", feedHandler.DeletePost)

		authorized.POST("/posts/:id/like", feedHandler.LikePost)
		authorized.DELETE("/posts/:id/like", feedHandler.UnlikePost)
	}

	// 创建 http.Server 以支持优雅关闭
	srv := &http.Server{
		Addr:    config.AppConfig.Addr,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", config.AppConfig.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}
