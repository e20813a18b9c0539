package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vdurham2244/lavobot-game/internal/engine"
	"github.com/vdurham2244/lavobot-game/internal/infrastructure/storage"
	"github.com/vdurham2244/lavobot-game/internal/server"
	"github.com/vdurham2244/lavobot-game/internal/version"
	"github.com/vdurham2244/lavobot-game/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var tuningPath string
	var replayPath string
	flag.StringVar(&tuningPath, "tuning", "", "Path to tuning.yaml (empty for defaults)")
	flag.StringVar(&replayPath, "replay", "", "Path to .lvrp replay file to simulate")
	flag.Parse()

	logger.Log.Info("Starting LavoBot...")
	logger.Log.Info(version.String())

	tuning, err := engine.LoadTuning(tuningPath)
	if err != nil {
		logger.Log.Fatal("Failed to load tuning:", err)
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")

		gameService := engine.NewService(tuning)

		replays := storage.NewReplayService(tuning.ReplayDir)
		session, err := replays.Load(replayPath)
		if err != nil {
			logger.Log.Fatal("Failed to load replay:", err)
		}

		stats, err := gameService.RunPlayback(session)
		if err != nil {
			logger.Log.Fatal("Playback failed:", err)
		}
		if stats != nil {
			logger.Log.Infof("Final progress: %.1f%% (%d/%d cells)",
				stats.Progress, stats.CleanedTiles, stats.TotalTiles)
		}

		return // Выходим после симуляции
	}

	port := os.Getenv("LV_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	gameService := engine.NewService(tuning)
	gameService.Replays = storage.NewReplayService(tuning.ReplayDir)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Останавливаем сессии, чтобы дописать реплеи
	for _, id := range gameService.SessionIDs() {
		gameService.StopSession(id)
	}

	logger.Log.Info("Done.")
}
