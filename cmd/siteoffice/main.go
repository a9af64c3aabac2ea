package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hanseo-dev/siteoffice/internal/auth"
	"github.com/hanseo-dev/siteoffice/internal/config"
	"github.com/hanseo-dev/siteoffice/internal/db"
	"github.com/hanseo-dev/siteoffice/internal/excel"
	httphandler "github.com/hanseo-dev/siteoffice/internal/http"
	"github.com/hanseo-dev/siteoffice/internal/http/middleware"
	"github.com/hanseo-dev/siteoffice/internal/logger"
	"github.com/hanseo-dev/siteoffice/internal/pdf"
	"github.com/hanseo-dev/siteoffice/internal/repository"
	"github.com/hanseo-dev/siteoffice/internal/service"
	"github.com/hanseo-dev/siteoffice/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	store, err := storage.New(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init upload storage")
	}

	pdfGenerator, err := pdf.NewContractGenerator(cfg.PDF.FontPath, cfg.PDF.FontName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	estimateExcel := excel.NewEstimateGenerator()
	clientExcel := excel.NewClientGenerator()

	accessTTL, err := time.ParseDuration(cfg.Auth.AccessTTL)
	if err != nil {
		log.Fatal().Err(err).Str("ttl", cfg.Auth.AccessTTL).Msg("invalid access token ttl")
	}

	estimateRepo := repository.NewEstimateRepository(database)
	contractRepo := repository.NewContractRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	clientRepo := repository.NewClientRepository(database)
	staffRepo := repository.NewStaffRepository(database)
	libraryRepo := repository.NewLibraryRepository(database)
	userRepo := repository.NewUserRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, accessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(userRepo, tokenIssuer)
	estimateService := service.NewEstimateService(estimateRepo, estimateExcel, cfg.List.PerPage)
	progressService := service.NewProgressService(progressRepo, contractRepo, cfg.List.PerPage)
	contractService := service.NewContractService(contractRepo, progressRepo, pdfGenerator, cfg.List.PerPage)
	clientService := service.NewClientService(clientRepo, clientExcel, cfg.List.PerPage)
	staffService := service.NewStaffService(staffRepo, store)
	libraryService := service.NewLibraryService(libraryRepo, store, cfg.List.PerPage)

	handler := httphandler.NewHandler(
		authService,
		estimateService,
		contractService,
		progressService,
		clientService,
		staffService,
		libraryService,
		store,
		log,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)
	router.MaxMultipartMemory = int64(cfg.Upload.MaxSizeMB) << 20

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting siteoffice service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
