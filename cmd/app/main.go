package main

import (
	"os"
	"os/signal"
	"syscall"

	"QualityInspector/internal/config"
	"QualityInspector/internal/config/inspector"
	"QualityInspector/pkg/classifier"
	"QualityInspector/pkg/log"
	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	inspectorCfg := inspector.NewConfig()

	clf, err := classifier.New(inspectorCfg.ModelPath, inspectorCfg.InputSize, len(inspectorCfg.Classes))
	if err != nil {
		logger.Fatalf("Failed to initialize classifier: %v", err)
	}
	if !clf.Ready() {
		logger.Warnf("Model not loaded. Place the ONNX model at: %s", inspectorCfg.ModelPath)
	}

	fiberApp := config.NewFiber(logger, inspectorCfg.MaxUploadBytes)
	validator := config.NewValidator()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithInspectorConfig(inspectorCfg),
		config.WithClassifier(clf),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Vegetable quality inspector started")

	<-sigChan
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
