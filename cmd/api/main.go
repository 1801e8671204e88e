// @title Multi-Track Conference Scheduling API
// @version 1.0
// @description Rooms, events, speakers and attendees for a multi-track conference, with conflict checking on every booking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multitrackscheduling/config"
	_ "multitrackscheduling/docs"
	"multitrackscheduling/internal/adapters/auth"
	"multitrackscheduling/internal/adapters/email"
	"multitrackscheduling/internal/adapters/sessionize"
	deliveryhttp "multitrackscheduling/internal/delivery/http"
	"multitrackscheduling/internal/delivery/http/controllers"
	"multitrackscheduling/internal/directory"
	"multitrackscheduling/internal/domain"
	"multitrackscheduling/internal/metrics"
	"multitrackscheduling/internal/repository/postgres"
	"multitrackscheduling/internal/scheduling"
	"multitrackscheduling/internal/services"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)

	dir, err := directory.Load(ctx, userRepo)
	if err != nil {
		return err
	}
	if cfg.DirectoryRefresh > 0 {
		go refreshDirectory(ctx, dir, userRepo, cfg.DirectoryRefresh, logger)
	}

	engine := scheduling.NewEngine(scheduling.NewRoomRegistry(), scheduling.NewStore(), dir)
	if err := services.RestoreSchedule(ctx, engine, scheduleRepo, logger); err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	scheduleService := services.NewScheduleService(engine, scheduleRepo, userRepo, emailService, recorder, logger, cfg.RequestTimeout)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)
	fetcher := sessionize.NewHTTPFetcher(&http.Client{Timeout: cfg.RequestTimeout}, cfg.SessionizeBaseURL)
	importService := services.NewImportService(fetcher, postgres.NewSpeakerLinkRepository(db), scheduleService, cfg.ImportRoomCapacity, logger, cfg.RequestTimeout)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Metrics:        recorder.Handler(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, deliveryhttp.Controllers{
		Auth:      controllers.NewAuthController(logger, authService),
		Rooms:     controllers.NewRoomController(logger, scheduleService),
		Events:    controllers.NewEventController(logger, scheduleService),
		Attendees: controllers.NewAttendeeController(logger, scheduleService),
		Import:    controllers.NewImportController(logger, importService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// refreshDirectory reloads speaker and attendee roles until ctx ends.
func refreshDirectory(ctx context.Context, dir *directory.Directory, repo domain.UserRepository, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := dir.Refresh(ctx, repo); err != nil {
				logger.Warn("directory refresh failed", "err", err)
			}
		}
	}
}
