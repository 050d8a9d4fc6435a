package main

import (
	"log"

	api "jobtrail-backend/cmd/api"
	authdomain "jobtrail-backend/internal/auth/domain"
	authRepo "jobtrail-backend/internal/auth/repository"
	authUsecase "jobtrail-backend/internal/auth/usecase"
	"jobtrail-backend/internal/ingest/classify"
	"jobtrail-backend/internal/ingest/extract"
	ingestUsecase "jobtrail-backend/internal/ingest/usecase"
	trackerdomain "jobtrail-backend/internal/tracker/domain"
	trackerRepo "jobtrail-backend/internal/tracker/repository"
	trackerUsecase "jobtrail-backend/internal/tracker/usecase"
	"jobtrail-backend/pkg/config"
	"jobtrail-backend/pkg/crypto"
	"jobtrail-backend/pkg/database"
	"jobtrail-backend/pkg/gmail"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.GmailToken{},
		&authdomain.ImapAccount{},
		&trackerdomain.Application{},
		&trackerdomain.ApplicationEmail{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Secrets encryption for stored IMAP credentials
	encryptionKey := cfg.EncryptionKey
	if encryptionKey == "" {
		encryptionKey = cfg.JWTSecret
	}
	encryptor, err := crypto.NewEncryptor(encryptionKey)
	if err != nil {
		log.Fatal("Failed to initialize encryptor:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	mailAccountRepo := authRepo.NewMailAccountRepository(db)
	applicationRepo := trackerRepo.NewApplicationRepository(db)

	// Gmail message source
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Classification and extraction pipeline
	classifier := classify.NewClassifier(classify.DefaultRules())
	var extractor extract.Extractor
	switch cfg.ExtractorStrategy {
	case "composite":
		extractor = extract.NewCompositeExtractor()
	default:
		extractor = extract.NewHeuristicExtractor()
	}
	log.Printf("[INIT] Extractor strategy: %s", cfg.ExtractorStrategy)

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepo, mailAccountRepo, encryptor, cfg)
	trackerUc := trackerUsecase.NewTrackerUsecase(applicationRepo)
	ingestUc := ingestUsecase.NewIngestUsecase(mailAccountRepo, applicationRepo, gmailService, classifier, extractor, encryptor, cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(authUc, trackerUc, ingestUc, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
