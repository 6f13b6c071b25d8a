package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"minesweep/internal/app"
	"minesweep/internal/config"
)

var log = logrus.New()

func setupLogging(cfg config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.LogFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.LogFile,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create file log hook: ", err)
	}
	log.AddHook(hook)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	setupLogging(cfg)

	log.Info("starting up, development = ", cfg.Development)

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.Error("exit reason: ", err)
	}
}
