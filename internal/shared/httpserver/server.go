package httpserver

import (
	"context"
	"strings"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	shutdownTimeout = 5 * time.Second
	bodyLimit       = 20 << 20
)

type Options struct {
	RequestTimeout time.Duration
	// ImageDir is served under ImageBaseURL when the latter is a local path.
	ImageDir     string
	ImageBaseURL string
}

type Server struct {
	app *fiber.App
}

func NewServer(opts Options) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "auctionMarket",
		ErrorHandler:          ErrorHandler,
		BodyLimit:             bodyLimit,
		ReadTimeout:           opts.RequestTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(requestLogger)
	if opts.RequestTimeout > 0 {
		app.Use(withTimeout(opts.RequestTimeout))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	if opts.ImageDir != "" && strings.HasPrefix(opts.ImageBaseURL, "/") {
		app.Static(opts.ImageBaseURL, opts.ImageDir)
	}

	return &Server{app: app}
}

// App exposes the fiber app so bounded contexts can mount their routes.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server started", zap.String("addr", addr))
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		// the error handler has not run yet
		if appStatus := statusOf(err); appStatus != 0 {
			status = appStatus
		}
	}
	log.Info("HTTP request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.String("requestID", c.GetRespHeader(fiber.HeaderXRequestID)),
		zap.String("remoteAddr", c.IP()),
	)
	return err
}

// withTimeout bounds the context handed to use cases.
func withTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
