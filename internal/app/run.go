package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/config"
	db "github.com/Ki-Sung/weather-email-service/internal/db"
	httpapi "github.com/Ki-Sung/weather-email-service/internal/httpapi"
	"github.com/Ki-Sung/weather-email-service/internal/mailer"
	"github.com/Ki-Sung/weather-email-service/internal/migrate"
	weather "github.com/Ki-Sung/weather-email-service/internal/modules/weather"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/provider"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/repository"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/service"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
	weatherviews "github.com/Ki-Sung/weather-email-service/internal/modules/weather/views"
	"github.com/Ki-Sung/weather-email-service/internal/mqtt"
	"github.com/Ki-Sung/weather-email-service/internal/scheduler"
)

// Run wires every component and blocks until ctx is canceled. With runNow set
// it performs a single delivery plus housekeeping and returns.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, runNow bool) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"logFile", cfg.LogFile,
		"sqliteDriver", cfg.SQLiteDriver,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
		"sqliteConnMaxLifetime", cfg.SQLiteConnMaxLifetime,
		"location", cfg.LocationName,
		"lat", cfg.Latitude,
		"lon", cfg.Longitude,
		"timezone", cfg.Timezone.String(),
		"scheduleTime", cfg.ScheduleTime,
		"cleanupInterval", cfg.CleanupInterval,
		"smtpHost", cfg.SMTPHost,
		"smtpPort", cfg.SMTPPort,
		"bccRecipients", len(cfg.BCCRecipients),
		"sendFailureNotice", cfg.SendFailureNotice,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttTopic", cfg.MQTTTopic,
	)

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(dbConn); closeErr != nil {
			logger.Error("db close", "error", closeErr)
		}
	}()

	if err := migrate.Run(ctx, dbConn, logger); err != nil {
		return err
	}

	var ok int
	if err := dbConn.QueryRowContext(ctx, `SELECT 1`).Scan(&ok); err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	logger.Info("database connection successful")

	if err := weatherviews.LoadTemplates(); err != nil {
		return err
	}

	repo := repository.NewRepository(dbConn)
	source := provider.NewClient(cfg, logger)
	sender := mailer.NewSMTPSender(cfg, logger)

	// A nil *mqtt.Publisher must not reach the service as a non-nil interface.
	var publisher service.SummaryPublisher
	var mqttPublisher *mqtt.Publisher
	if cfg.MQTTBroker != "" {
		mqttPublisher = mqtt.NewPublisher(cfg, logger)
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err := mqttPublisher.Connect(connectCtx)
		connectCancel()
		if err != nil {
			logger.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
		}
		publisher = mqttPublisher
		defer func() {
			logger.Info("mqtt disconnecting")
			mqttPublisher.Disconnect()
		}()
	}

	svc := service.NewService(cfg, source, sender, repo, publisher, logger)
	housekeeper := scheduler.NewHousekeeper(repo, logger)

	if runNow {
		return runOnce(ctx, svc, housekeeper, logger)
	}

	sched, err := scheduler.New(cfg, svc, housekeeper, logger)
	if err != nil {
		return err
	}

	mux := httpapi.NewMux(dbConn, repo)
	weather.RegisterFeature(mux, svc, logger)
	srv := httpapi.NewServer(cfg, mux, logger)

	sched.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("scheduler stopping")
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler stop", "error", err)
	}

	if serveErr != nil {
		if errors.Is(serveErr, http.ErrServerClosed) {
			return nil
		}
		return serveErr
	}

	logger.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

func runOnce(ctx context.Context, svc *service.Service, housekeeper *scheduler.Housekeeper, logger *slog.Logger) error {
	logger.Info("running delivery now")
	d, err := svc.Run(ctx, types.TriggerStartup)
	housekeeper.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("delivery finished", "id", d.ID, "status", d.Status, "recipients", d.Recipients)
	return nil
}
