package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	auctionpg "github.com/cristianortiz/auctionMarket/internal/auction/infra/repository/postgres"
	auctionrest "github.com/cristianortiz/auctionMarket/internal/auction/infra/rest"
	auctionws "github.com/cristianortiz/auctionMarket/internal/auction/infra/websocket"
	bidapp "github.com/cristianortiz/auctionMarket/internal/bid/application"
	bidpg "github.com/cristianortiz/auctionMarket/internal/bid/infra/repository/postgres"
	bidrest "github.com/cristianortiz/auctionMarket/internal/bid/infra/rest"
	imageapp "github.com/cristianortiz/auctionMarket/internal/image/application"
	imagepg "github.com/cristianortiz/auctionMarket/internal/image/infra/repository/postgres"
	"github.com/cristianortiz/auctionMarket/internal/image/infra/storage"
	paymentapp "github.com/cristianortiz/auctionMarket/internal/payment/application"
	paymentdomain "github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/payment/infra/gateway"
	paymentpg "github.com/cristianortiz/auctionMarket/internal/payment/infra/repository/postgres"
	paymentrest "github.com/cristianortiz/auctionMarket/internal/payment/infra/rest"
	productapp "github.com/cristianortiz/auctionMarket/internal/product/application"
	productpg "github.com/cristianortiz/auctionMarket/internal/product/infra/repository/postgres"
	productrest "github.com/cristianortiz/auctionMarket/internal/product/infra/rest"
	"github.com/cristianortiz/auctionMarket/internal/shared/config"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/cristianortiz/auctionMarket/internal/shared/db/migrations"
	"github.com/cristianortiz/auctionMarket/internal/shared/httpserver"
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/cristianortiz/auctionMarket/internal/shared/websocket"
	userpg "github.com/cristianortiz/auctionMarket/internal/user/infra/repository/postgres"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := logger.GetLogger()
	defer logger.Sync()

	logger.Info("Starting AuctionMarket server...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DB.PostgresDSN()
	logger.Info("Running database migrations...")
	if err := migrations.RunMigrations(dsn); err != nil {
		logger.Fatal("Database migration failed", zap.Error(err))
	}

	pool, err := db.GetPostgresDBPool(ctx, dsn)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()
	transactor := db.NewPoolTransactor(pool)

	// repositories
	userRepo := userpg.NewUserRepository(pool)
	productRepo := productpg.NewProductRepository(pool)
	auctionRepo := auctionpg.NewAuctionRepository(pool)
	bidRepo := bidpg.NewBidRepository(pool)
	imageRepo := imagepg.NewImageRepository(pool)
	paymentRepo := paymentpg.NewPaymentRepository(pool)

	imageStore, err := storage.NewLocalStore(cfg.ImageDir, cfg.ImageBaseURL)
	if err != nil {
		logger.Fatal("Image store init failed", zap.Error(err))
	}

	var paymentGateway paymentdomain.Gateway
	if cfg.Payment.GatewayURL == "" {
		logger.Warn("PAYMENT_GATEWAY_URL not set, using the sandbox gateway")
		paymentGateway = gateway.NewSandbox()
	} else {
		paymentGateway = gateway.NewClient(cfg.Payment.GatewayURL, cfg.Payment.SecretKey, cfg.Payment.Timeout)
	}

	// services
	auctionSvc := auctionapp.NewAuctionService(auctionRepo, cfg.AuctionDuration)
	imageSvc := imageapp.NewImageService(imageStore, imageRepo, transactor)
	productSvc := productapp.NewProductService(
		productapp.NewRegisterProductUseCase(transactor, productRepo, userRepo, auctionSvc, imageSvc),
		productapp.NewConvertToAuctionUseCase(transactor, productRepo, auctionSvc),
	)
	placeBidUC := bidapp.NewPlaceBidUseCase(transactor, bidRepo, userRepo, auctionSvc)
	bidSvc := bidapp.NewBidService(placeBidUC, bidRepo)
	paymentSvc := paymentapp.NewPaymentService(
		paymentapp.NewCreateOrderIDUseCase(paymentRepo, paymentGateway, paymentapp.RetryPolicy{
			MaxAttempts: cfg.Payment.OrderIDMaxAttempts,
			Delay:       cfg.Payment.OrderIDRetryDelay,
		}),
		paymentapp.NewApprovePaymentUseCase(transactor, paymentRepo, paymentGateway, auctionSvc, cfg.Payment.Timeout),
	)

	// live feed
	hub := websocket.NewHub()
	wsHandler := auctionws.NewAuctionWSHandler(auctionSvc, bidSvc, hub, cfg.RequestTimeout)
	placeBidUC.SetNotifier(auctionws.NewFeed(wsHandler, hub))

	server := httpserver.NewServer(httpserver.Options{
		RequestTimeout: cfg.RequestTimeout,
		ImageDir:       cfg.ImageDir,
		ImageBaseURL:   cfg.ImageBaseURL,
	})
	app := server.App()
	wsHandler.RegisterRoutes(ctx, app)
	api := app.Group("/api/v1")
	productrest.NewProductHandler(productSvc).RegisterRoutes(api)
	auctionrest.NewAuctionHandler(auctionSvc).RegisterRoutes(api)
	bidrest.NewBidHandler(bidSvc).RegisterRoutes(api)
	paymentrest.NewPaymentHandler(paymentSvc).RegisterRoutes(api)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return wsHandler.ListenForMessages(gctx) })
	g.Go(func() error { return server.Start(gctx, cfg.HTTPAddr) })

	if err := g.Wait(); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("AuctionMarket server stopped")
}
