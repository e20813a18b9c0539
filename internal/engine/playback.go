package engine

import (
	"fmt"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/scene"
	"github.com/vdurham2244/lavobot-game/pkg/api"
	"github.com/vdurham2244/lavobot-game/pkg/logger"
)

// RunPlayback прогоняет записанную сессию синхронно, без тикера и без
// подписчиков, и возвращает финальный отчет. Симуляция детерминирована:
// одна лента ввода дает один и тот же результат на любой машине.
func (s *Service) RunPlayback(session *domain.ReplaySession) (*api.StatsView, error) {
	sc, ok := scene.Get(session.Scene)
	if !ok {
		return nil, fmt.Errorf("replay references unknown scene: %q", session.Scene)
	}

	inst := NewInstance("playback", s)
	inst.LoadScene(sc)

	lastTick := 0
	if n := len(session.Frames); n > 0 {
		lastTick = session.Frames[n-1].Tick
	}

	fi := 0
	for inst.Tick <= lastTick {
		// Применяем все записи ввода, чей момент уже наступил
		for fi < len(session.Frames) && session.Frames[fi].Tick <= inst.Tick {
			f := session.Frames[fi]
			inst.setInput(domain.InputFrame{
				Intent:  domain.Intent{X: int(f.IntentX), Z: int(f.IntentZ)},
				ViewKey: f.ViewKey,
			})
			fi++
		}
		inst.StepFrame()
	}

	stats := inst.StatsSnapshot()
	logger.Log.WithFields(map[string]interface{}{
		"scene":  session.Scene,
		"frames": len(session.Frames),
		"ticks":  inst.Tick,
	}).Info("Playback finished")

	return stats, nil
}
