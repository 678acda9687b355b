package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/config"
	"github.com/andrewpaige1/flashdeck-api/handlers"
	"github.com/andrewpaige1/flashdeck-api/middleware"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/pflag"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	flags := pflag.NewFlagSet("flashdeck-api", pflag.ExitOnError)
	config.Flags(flags)
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := config.NewLogger(cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	// Initialize database connection
	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	dataStore := store.New(db)

	tokens, err := auth.NewIssuer(auth.Options{
		Secret:     []byte(cfg.JWTSecretKey),
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	if err != nil {
		log.Fatalf("Token issuer setup failed: %v", err)
	}

	DBHandler := &handlers.DBHandler{Store: dataStore, Tokens: tokens}
	mux := DBHandler.Routes()

	authMiddleware := middleware.EnsureValidToken(tokens)
	var handler http.Handler = authMiddleware(middleware.LoadUser(dataStore)(mux))
	handler = middleware.RequestLogger(logger)(handler)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(handler)

	serverAddr := "0.0.0.0:" + cfg.Port
	logger.Info("server starting", slog.String("addr", serverAddr), slog.String("db_driver", cfg.DBDriver))
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
