package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Effortree/backend/config"
	"github.com/Effortree/backend/handler"
	"github.com/Effortree/backend/middleware"
	"github.com/Effortree/backend/repository"
	"github.com/Effortree/backend/services"
	"github.com/Effortree/backend/usecase"
	"github.com/Effortree/backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	utils.InitValidator()

	if os.Getenv("GO_ENV") != "test" {
		dbCfg := config.LoadDatabaseConfig()
		utils.InitMongoClient(dbCfg.URI, dbCfg.MaxPoolSize, dbCfg.MinPoolSize, dbCfg.MaxConnIdleTime)
	}
}

func setupRouter() *gin.Engine {
	dbCfg := config.LoadDatabaseConfig()
	db := utils.MongoClient.Database(dbCfg.DatabaseName)

	if err := repository.SetupIndexes(db); err != nil {
		log.Printf("Warning: index setup failed: %v", err)
	}

	// Repositories
	questsRepo := repository.GetQuestsRepo(db)
	usersRepo := repository.GetUsersRepo(db)
	giftsRepo := repository.GetGiftsRepo(db)
	chatsRepo := repository.GetChatsRepo(db)
	countersRepo := repository.GetCountersRepo(db)

	// Services
	analyticsService := usecase.NewAnalyticsService(questsRepo)

	llmCfg := config.LoadLLMConfig()
	llmService, err := services.NewLLMService(llmCfg.APIKey, llmCfg.Model, llmCfg.Timeout)
	if err != nil {
		log.Fatalf("Failed to initialize LLM service: %v", err)
	}

	var interpretationCache *services.InterpretationCache
	redisCfg := config.LoadRedisConfig()
	if redisCfg.URL != "" {
		interpretationCache, err = services.NewInterpretationCache(redisCfg.URL, redisCfg.TTL)
		if err != nil {
			log.Printf("Interpretation cache disabled: %v", err)
			interpretationCache = nil
		}
	}

	var giftStorage handler.ImageUploader
	storageCfg := config.LoadStorageConfig()
	if storageCfg.Endpoint != "" {
		storage, err := services.NewGiftStorage(
			storageCfg.Endpoint,
			storageCfg.AccessKey,
			storageCfg.SecretKey,
			storageCfg.Bucket,
			storageCfg.PublicURL,
			storageCfg.UseSSL,
		)
		if err != nil {
			log.Printf("Gift image storage disabled: %v", err)
		} else {
			giftStorage = storage
		}
	}

	// Handlers
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	questsHandler := handler.NewQuestsHandler(questsRepo, countersRepo)
	usersHandler := handler.NewUsersHandler(usersRepo, questsRepo, countersRepo)
	parentsHandler := handler.NewParentsHandler(analyticsService, giftsRepo, llmService, interpretationCache, giftStorage)
	tutorHandler := handler.NewTutorHandler(chatsRepo, llmService)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	analytics := router.Group("/analytics")
	analytics.Use(middleware.CacheControlMiddleware("30"))
	{
		analytics.GET("/summary", analyticsHandler.GetSummary)
		analytics.GET("/plan-vs-actual", analyticsHandler.GetPlanVsActual)
		analytics.GET("/subjects", analyticsHandler.GetSubjects)
		analytics.GET("/streak", analyticsHandler.GetStreak)
		analytics.GET("/kanban", analyticsHandler.GetKanban)
		analytics.GET("/daily-actual-308", analyticsHandler.GetDailyActualLongRange)
	}

	quests := router.Group("/quests")
	{
		quests.POST("", questsHandler.CreateQuest)
		quests.GET("", questsHandler.GetUserQuests)
		quests.PATCH("", questsHandler.UpdateQuest)
		quests.PATCH("/status", questsHandler.ChangeQuestStatus)
		quests.POST("/logs", questsHandler.AppendLog)
		quests.DELETE("", questsHandler.DeleteQuest)
	}

	users := router.Group("/users")
	{
		users.POST("", usersHandler.RegisterUser)
		users.PATCH("", usersHandler.UpdateUser)
		users.DELETE("", usersHandler.DeleteUser)
	}

	parents := router.Group("/parents")
	{
		parents.GET("/interpretation", parentsHandler.GetInterpretation)
		parents.POST("/chat", parentsHandler.ParentChat)
		parents.POST("/gift", middleware.RequestSizeLimiter(10<<20), parentsHandler.SaveGift)
		parents.GET("/gift", parentsHandler.GetGift)
		parents.DELETE("/gift", parentsHandler.DeleteGift)
	}

	tutor := router.Group("/tutor")
	{
		tutor.POST("/chat", tutorHandler.Chat)
		tutor.POST("/summary", tutorHandler.Summarize)
	}

	return router
}

func main() {
	router := setupRouter()

	go utils.CollectSystemMetrics(15 * time.Second)

	serverCfg := config.LoadServerConfig()
	serverAddr := fmt.Sprintf(":%s", serverCfg.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
