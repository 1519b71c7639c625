package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "personaai/docs"
	"personaai/internal/auth"
	"personaai/internal/chat"
	"personaai/internal/config"
	"personaai/internal/handler"
	"personaai/internal/llm"
	"personaai/internal/logging"
	"personaai/internal/middleware"
	"personaai/internal/models"
	"personaai/internal/storage"
)

// @title           PersonaAI API
// @version         1.0
// @description     Persona-driven chat backend with an admin resource API.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := storage.Connect(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := storage.NewStore(db, logger)

	ctx := context.Background()
	if err := seedAdmin(ctx, store, cfg, logger); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("failed to create token issuer", "error", err)
		os.Exit(1)
	}

	registry := llm.NewRegistry(cfg.LLM, logger)
	orch := chat.New(store, registry, cfg.Chat.HistoryLimit, logger)

	var speech *llm.SpeechClient
	if cfg.Speech.Enabled {
		speech, err = llm.NewSpeechClient(ctx, cfg.Speech.CredentialsFile)
		if err != nil {
			logger.Error("failed to create speech client", "error", err)
			os.Exit(1)
		}
		defer speech.Close()
	}

	h := handler.New(store, tokens, orch, speech, logger)

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Invite-Code")
	router.Use(cors.New(corsConfig))

	router.POST("/signup", middleware.InviteCode(cfg.Auth.SignupInviteCode), h.Signup)
	router.POST("/login", h.Login)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api", middleware.Authenticate(tokens))
	{
		api.GET("/character", h.Character)

		chatLimit := middleware.ChatRateLimit(cfg.Chat.RatePerMinute, cfg.Chat.RateBurst)
		api.POST("/chat", chatLimit, h.Chat)
		api.POST("/chat/speech", chatLimit, h.Speech)

		admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			admin.PUT("", h.AdminUpdate)
			admin.GET("", h.AdminGet)
			admin.DELETE("", h.AdminDelete)
		}
	}

	router.GET("/ws/chat", h.ChatSocket)

	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// seedAdmin creates the configured admin account when the users table is
// empty, so a fresh deployment can log in to the dashboard.
func seedAdmin(ctx context.Context, store *storage.Store, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Auth.SeedAdminEmail == "" || cfg.Auth.SeedAdminPassword == "" {
		return nil
	}

	n, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Auth.SeedAdminPassword)
	if err != nil {
		return err
	}

	name := cfg.Auth.SeedAdminName
	if name == "" {
		name = "Admin User"
	}
	admin := &models.User{
		Name:     name,
		Email:    cfg.Auth.SeedAdminEmail,
		Password: hash,
		Type:     models.RoleAdmin,
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return err
	}
	logger.Info("seeded admin user", "email", admin.Email)
	return nil
}
