package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/app"
	"github.com/vladislavdragonenkov/returns/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(cfg app.Config) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// parseFlags возвращает путь к файлу конфигурации. Пустой путь означает поиск rms.yaml по умолчанию.
func parseFlags(args []string) (string, error) {
	fs := flag.NewFlagSet("return-service", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("RMS_CONFIG"), "path to rms.yaml")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *configPath, nil
}

func main() {
	configPath, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("некорректная конфигурация")
	}
	if err := setupLogger(cfg); err != nil {
		log.WithError(err).Fatal("некорректный уровень логирования")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"version":        version.String(),
		"grpc_addr":      cfg.GRPCAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_enabled":  len(cfg.KafkaBrokers) > 0,
		"redis_enabled":  cfg.RedisAddr != "",
	}).Info("запускаем ReturnService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("ReturnService остановлен")
}
