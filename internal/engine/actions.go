package engine

import (
	"fmt"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/scene"
	"github.com/vdurham2244/lavobot-game/pkg/api"
)

// handleInit отдает клиенту полный снимок сцены (триггер первой отрисовки)
func handleInit(i *Instance) (Result, error) {
	i.PushInit()
	return Result{
		Msg:     "Добро пожаловать в LavoBot.",
		MsgType: "INFO",
	}, nil
}

// handleInput заменяет состояние ввода. Значения уже прошли Validate().
func handleInput(i *Instance, p api.InputPayload) (Result, error) {
	i.setInput(domain.InputFrame{
		Intent:  domain.Intent{X: p.Ix, Z: p.Iz},
		ViewKey: p.ViewKey,
	})
	return EmptyResult(), nil
}

// handleSwitchScene сбрасывает сессию в новую сцену.
// Старое состояние уничтожается полностью, реплей сцены уходит на диск.
func handleSwitchScene(i *Instance, p api.ScenePayload) (Result, error) {
	id := domain.SceneID(p.Scene)
	next, ok := scene.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("unknown scene: %q", p.Scene)
	}

	if i.Scene != nil && i.Scene.ID == id {
		return EmptyResult(), nil // уже там
	}

	i.Service.flushReplay(i)
	i.LoadScene(next)
	i.PushInit()

	return Result{
		Msg:     fmt.Sprintf("Сцена: %s.", next.Name),
		MsgType: "INFO",
	}, nil
}
