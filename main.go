package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"finance-api/config"
	"finance-api/middleware"
	"finance-api/routes"
	"finance-api/services"
	"finance-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	tokens := utils.NewTokenManager(jwtSecret, tokenTTL())

	var cipher *utils.Cipher
	if key := os.Getenv("TOTP_ENCRYPTION_KEY"); key != "" {
		cipher, err = utils.NewCipher(key)
		if err != nil {
			log.Fatal("Invalid TOTP_ENCRYPTION_KEY:", err)
		}
	} else {
		log.Println("TOTP_ENCRYPTION_KEY not set, 2FA endpoints disabled")
	}

	store := services.NewStore(db)
	svc := services.NewFinanceService(store, tokens, cipher)

	botSessions := services.NewBotSessionStore(db)
	go scheduleBotSessionCleaning(botSessions)

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	})

	router.Use(middleware.RateLimiter(100, time.Minute))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, svc)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			routes.SetupUserRoutes(protected, svc)
			routes.SetupCategoryRoutes(protected, svc)
			routes.SetupTransactionRoutes(protected, svc)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func tokenTTL() time.Duration {
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
		log.Printf("Ignoring invalid JWT_TTL_MINUTES=%q", v)
	}
	return utils.DefaultTokenTTL
}

func allowedOrigins() []string {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return []string{frontendURL}
}

// Bot dialogs abandoned for a week are junk; sweep them daily.
func scheduleBotSessionCleaning(sessions *services.BotSessionStore) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	cleanIdleBotSessions(sessions)
	for range ticker.C {
		cleanIdleBotSessions(sessions)
	}
}

func cleanIdleBotSessions(sessions *services.BotSessionStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	removed, err := sessions.DeleteIdle(ctx, 7*24*time.Hour)
	if err != nil {
		log.Printf("❌ Bot session cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Cleaned %d idle bot sessions", removed)
	}
}
