package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/app/controller"
	"dropxcult-admin/app/middleware"
	"dropxcult-admin/app/router"
	"dropxcult-admin/config"
	"dropxcult-admin/db"
	"dropxcult-admin/preview"
	"dropxcult-admin/repository"
	"dropxcult-admin/service"
)

// Initialize connects the database and wires every layer into an http.Handler.
// Background work started here stops when ctx is cancelled.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	// Initialize database connection
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	if err := db.InitDB(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(ctx, db.DB); err != nil {
		return nil, err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	orderRepo := repository.NewOrderRepository()
	userRepo := repository.NewUserRepository()
	designRepo := repository.NewCustomDesignRepository()

	// Preview pipeline
	catalog, err := preview.LoadCatalog(cfg.TemplateCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}
	resolver := preview.NewResolver(catalog)
	assets := service.NewLocalAssetStore(cfg.StaticDir)
	compositor := service.NewCompositor(assets)
	overlay, err := service.NewOverlayRenderer()
	if err != nil {
		return nil, err
	}
	sheets := service.NewSheetService(cfg.PublicBaseURL, cfg.ChromePath)
	thumbnails, err := service.NewThumbnailCache(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	// Drive archive is optional
	modOpts := service.ModerationOptions{
		FolderID: cfg.DriveArchiveFolderID,
		Width:    cfg.PreviewWidth,
		Height:   cfg.PreviewHeight,
	}
	if cfg.GoogleCredentialsPath != "" && cfg.DriveArchiveFolderID != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			return nil, err
		}
		modOpts.Drive = driveService
		log.Infof("🗂️  Accepted designs will be archived to Drive folder %s", cfg.DriveArchiveFolderID)
	} else {
		log.Warn("⚠️  GOOGLE_APPLICATION_CREDENTIALS or DRIVE_ARCHIVE_FOLDER_ID not set, Drive archive disabled")
	}
	moderation := service.NewModerationService(designRepo, resolver, compositor, modOpts)
	stats := service.NewStatsService(orderRepo, productRepo, userRepo)

	limiter := middleware.NewRateLimiter(cfg.PreviewRatePerSec, cfg.PreviewBurst)
	limiter.StartCleanup(10*time.Minute, ctx.Done())

	// Create controllers
	controllers := &router.Controllers{
		Stats:   controller.NewStatsController(stats),
		Product: controller.NewProductController(productRepo),
		Order:   controller.NewOrderController(orderRepo),
		User:    controller.NewUserController(userRepo),
		CustomRequest: controller.NewCustomRequestController(controller.CustomRequestDeps{
			Designs:    designRepo,
			Moderation: moderation,
			Resolver:   resolver,
			Raster:     compositor,
			Overlay:    overlay,
			Sheets:     sheets,
			Assets:     assets,
			Thumbnails: thumbnails,
			Width:      cfg.PreviewWidth,
			Height:     cfg.PreviewHeight,
		}),
	}

	return router.SetupRoutes(controllers, router.Options{
		StaticDir:      cfg.StaticDir,
		PreviewLimiter: limiter,
	}), nil
}
