package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning хранит параметры запуска движка.
// Загружается из tuning.yaml; отсутствующий файл означает дефолты.
type Tuning struct {
	// TickRateHz - частота кадров симуляции на сервере.
	TickRateHz int `yaml:"tick_rate_hz"`

	// AvatarSpeed - скорость робота, единиц мира за кадр.
	AvatarSpeed float64 `yaml:"avatar_speed"`

	// ReplayDir - каталог для записей сессий (.lvrp)
	ReplayDir string `yaml:"replay_dir"`

	// MaxSessions - потолок одновременных сессий на процесс
	MaxSessions int `yaml:"max_sessions"`
}

// NewTuning создает конфиг по умолчанию
func NewTuning() Tuning {
	return Tuning{
		TickRateHz:  30,
		AvatarSpeed: 0.15,
		ReplayDir:   "replays",
		MaxSessions: 64,
	}
}

// LoadTuning читает tuning.yaml поверх дефолтов.
// Пустой путь - это не ошибка, просто дефолты.
func LoadTuning(path string) (Tuning, error) {
	t := NewTuning()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}

	if t.TickRateHz <= 0 {
		return t, fmt.Errorf("tuning.yaml: tick_rate_hz must be positive, got %d", t.TickRateHz)
	}
	if t.AvatarSpeed <= 0 {
		return t, fmt.Errorf("tuning.yaml: avatar_speed must be positive, got %v", t.AvatarSpeed)
	}
	return t, nil
}

// TickInterval возвращает длительность одного кадра симуляции
func (t Tuning) TickInterval() time.Duration {
	return time.Second / time.Duration(t.TickRateHz)
}
