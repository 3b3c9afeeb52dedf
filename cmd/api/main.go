package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"fad/internal/adapter/api"
	"fad/internal/adapter/api/handler"
	apimiddleware "fad/internal/adapter/api/middleware"
	"fad/internal/adapter/api/router"
	"fad/internal/adapter/repository"
	"fad/internal/domain/entity"
	"fad/internal/domain/workflow"
	"fad/internal/infrastructure/cache"
	"fad/internal/infrastructure/firebase"
	"fad/internal/infrastructure/ratelimit"
	"fad/internal/infrastructure/storage"
	"fad/internal/infrastructure/websocket"
	"fad/internal/usecase"
	"fad/pkg/config"
	"fad/pkg/logger"
)

// activityStore caches dashboard counts and carries the activity feed.
type activityStore interface {
	usecase.StatsCache
	usecase.ActivityPublisher
	Subscribe(ctx context.Context, handle func(*entity.ActivityLogEntry))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountJSON != "":
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case cfg.ServiceAccountPath != "":
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	default:
		log.Printf("No service account configured, using application default credentials")
	}

	if cfg.UsingPlaceholders {
		logger.Warn("Gateway settings are placeholders, requests that reach Firebase will fail")
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	store := newActivityStore(ctx, cfg)

	classifier, err := workflow.LoadClassifier(cfg.ClassifierRulesPath)
	if err != nil {
		log.Fatalf("Failed to load complaint classifier: %v", err)
	}

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultLimits, ratelimit.PerMinute(cfg.RateLimitPerMinute))
	limiter.StartCleanupRoutine(ctx)

	vendorRepo := repository.NewFirestoreVendorRepository(firestoreClient)
	certRepo := repository.NewFirestoreCertificationRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	complaintRepo := repository.NewFirestoreComplaintRepository(firestoreClient)
	subscriptionRepo := repository.NewFirestoreSubscriptionRepository(firestoreClient)
	campaignRepo := repository.NewFirestoreCampaignRepository(firestoreClient)
	activityRepo := repository.NewFirestoreActivityLogRepository(firestoreClient)
	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	analyticsRepo := repository.NewFirestoreAnalyticsRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	store.Subscribe(ctx, func(entry *entity.ActivityLogEntry) {
		wsManager.Broadcast(websocket.NewMessage(websocket.MessageTypeActivity, entry))
	})

	activityUseCase := usecase.NewActivityUseCase(activityRepo, store, store)
	fileUseCase := usecase.NewFileUseCase(storageClient, fileMetadataRepo, cfg.MaxUploadBytes)
	authUseCase := usecase.NewAuthUseCase(profileRepo, firebaseAuthClient)
	vendorUseCase := usecase.NewVendorUseCase(vendorRepo, certRepo, reviewRepo, complaintRepo, fileUseCase, activityUseCase)
	certificationUseCase := usecase.NewCertificationUseCase(certRepo, vendorRepo, activityUseCase)
	listingUseCase := usecase.NewListingUseCase(listingRepo, vendorRepo, activityUseCase)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, vendorRepo, profileRepo, limiter, activityUseCase, cfg.ReviewAutoPublish)
	complaintUseCase := usecase.NewComplaintUseCase(complaintRepo, vendorRepo, profileRepo, fileUseCase, limiter, activityUseCase)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, vendorRepo, activityUseCase)
	campaignUseCase := usecase.NewCampaignUseCase(campaignRepo, profileRepo, vendorRepo, subscriptionUseCase)
	dashboardUseCase := usecase.NewDashboardUseCase(vendorRepo, listingRepo, reviewRepo, complaintRepo, activityUseCase, store)
	analyticsUseCase := usecase.NewAnalyticsUseCase(analyticsRepo, certRepo, complaintRepo, vendorRepo, classifier)

	handler.Setup(
		authUseCase,
		vendorUseCase,
		certificationUseCase,
		listingUseCase,
		reviewUseCase,
		complaintUseCase,
		subscriptionUseCase,
		campaignUseCase,
		dashboardUseCase,
		activityUseCase,
		analyticsUseCase,
	)
	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupFeedHandler(wsManager, cfg.AllowedOrigins)

	e := echo.New()
	e.Debug = cfg.IsDevelopment()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(middleware.BodyLimit(bodyLimit(cfg.MaxUploadBytes)))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.Setup(e, authMiddleware, adminMiddleware, limiter)

	go func() {
		log.Printf("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// newActivityStore prefers Redis so several API instances share the cache
// and the feed. Without it each instance keeps its own.
func newActivityStore(ctx context.Context, cfg *config.Config) activityStore {
	if cfg.RedisURL == "" {
		return cache.NewMemoryStore(cfg.DashboardCacheTTL)
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-process cache: %v", err)
		return cache.NewMemoryStore(cfg.DashboardCacheTTL)
	}
	log.Printf("Using Redis for dashboard cache and activity feed")
	return cache.NewRedisStore(client, cfg.DashboardCacheTTL)
}

// bodyLimit leaves room for multipart overhead above the largest upload.
func bodyLimit(maxUpload int64) string {
	mb := maxUpload/(1024*1024) + 1
	return strconv.FormatInt(mb*4, 10) + "M"
}
