package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/daily-saju/fortune-backend/api"
	"github.com/daily-saju/fortune-backend/internal/fortune"
	"github.com/daily-saju/fortune-backend/internal/llm"
	"github.com/daily-saju/fortune-backend/internal/ocr"
	"github.com/daily-saju/fortune-backend/internal/platform/config"
	"github.com/daily-saju/fortune-backend/internal/platform/database"
	"github.com/daily-saju/fortune-backend/internal/platform/shutdown"
	"github.com/daily-saju/fortune-backend/internal/stats"
	"github.com/daily-saju/fortune-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. 加载 .env 中的密钥（文件缺失时忽略，交给进程环境）
	if err := godotenv.Load(); err == nil {
		fmt.Println(".env 已加载。")
	}

	// 2. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("配置加载失败，无法启动: %v", err))
	}

	// 3. 初始化数据库和Redis
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Redis)
	if err := stats.SetupDatabase(database.DB); err != nil {
		panic(fmt.Sprintf("数据库迁移失败: %v", err))
	}

	// 4. 组装各模块
	statsRepo := stats.NewRepository(database.DB)
	statsService := stats.NewService(statsRepo, cfg.Stats.IncludeTeensBucket, cfg.Stats.CacheTTL())

	llmClient, err := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  config.LLMAPIKey(),
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout(),
	})
	if err != nil {
		panic(fmt.Sprintf("生成服务客户端初始化失败: %v", err))
	}
	fortuneService := fortune.NewService(llmClient, fortune.NewSynthesizer())

	// OCR密钥未配置时客户端保持nil，请求返回配置错误而不是启动失败
	var ocrClient *ocr.Client
	if secret := config.OCRSecret(); secret != "" && cfg.OCR.Endpoint != "" {
		ocrClient, err = ocr.NewClient(ocr.Config{
			Endpoint: cfg.OCR.Endpoint,
			Secret:   secret,
			Timeout:  cfg.OCR.Timeout(),
		})
		if err != nil {
			panic(fmt.Sprintf("OCR客户端初始化失败: %v", err))
		}
	} else {
		fmt.Println("警告: CLOVA OCR未配置，/api/ocr 将返回配置错误。")
	}

	// 5. 启动后台的保留期清理器
	manager := lifecycle.NewManager()
	retentionHandle, err := manager.NewServiceHandle("dropout-retention")
	if err != nil {
		panic(err)
	}
	go stats.NewRetentionRunner(statsService).Run(retentionHandle)

	// 6. 创建Gin引擎并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api.SetupRoutes(r, api.Handlers{
		Fortune: fortune.NewHandler(fortuneService),
		Stats:   stats.NewHandler(statsService),
		OCR:     ocr.NewHandler(ocrClient),
	})

	// 7. 启动服务器并等待停机信号
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

	shutdown.NewCoordinator(manager).ListenForSignalsAndShutdown(server)
}
