package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"buildconnect/cmd"
	httpserver "buildconnect/internal/adapters/in/http"
	"buildconnect/internal/adapters/out/kafka"
	"buildconnect/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}

	publisher, err := kafka.NewRotationEventPublisher(
		[]string{configs.KafkaHost}, configs.KafkaRotationTopic, logger)
	if err != nil {
		logger.Error("kafka setup failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	root := cmd.NewCompositionRoot(gormDB, publisher, responseTimeout(configs), logger)

	jobManager := jobs.NewJobManager(
		root.CreateGetExpiredContactsQueryHandler(),
		root.CreateSubmitProviderResponseCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("job startup failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		MigrationsDir:          goDotEnvVariable("MIGRATIONS_DIR"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaRotationTopic:     goDotEnvVariable("KAFKA_ROTATION_TOPIC"),
		ResponseTimeoutMinutes: goDotEnvVariable("RESPONSE_TIMEOUT_MINUTES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// responseTimeout parses the configured provider response window. Zero means
// "use the command-layer default".
func responseTimeout(configs cmd.Config) time.Duration {
	if configs.ResponseTimeoutMinutes == "" {
		return 0
	}
	minutes, err := strconv.Atoi(configs.ResponseTimeoutMinutes)
	if err != nil {
		log.Fatalf("Invalid RESPONSE_TIMEOUT_MINUTES: %v", err)
	}
	return time.Duration(minutes) * time.Minute
}

// openDatabase connects to PostgreSQL, applies pending migrations, and wraps
// the connection for GORM.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	migrationsDir := configs.MigrationsDir
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := goose.Up(sqlDB, migrationsDir); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return gormDB, nil
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := httpserver.NewServer(
		root.CreateCreateDeliveryRequestCommandHandler(),
		root.CreateSubmitProviderResponseCommandHandler(),
		root.CreateCancelDeliveryRequestCommandHandler(),
		root.CreateDiscloseDriverContactCommandHandler(),
		root.CreateGetRotationStatusQueryHandler(),
		root.CreateGetActiveRequestsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
