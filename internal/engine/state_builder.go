package engine

import (
	"sort"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/systems"
	"github.com/vdurham2244/lavobot-game/pkg/api"
)

// BuildInit создает полный снимок сцены для клиента: статическая
// геометрия + все убираемые клетки + стартовое состояние аватара.
// Дорогой вызов (тысячи клеток), выполняется только на INIT и при
// переключении сцены.
func (i *Instance) BuildInit() *api.ServerResponse {
	sc := i.Scene

	props := make([]api.PropView, 0, len(sc.Props))
	for _, p := range sc.Props {
		props = append(props, api.PropView{
			Kind:  p.Kind,
			Pos:   p.Pos,
			Size:  p.Size,
			Color: p.Color,
			RotY:  p.RotY,
		})
	}

	// Клетки собираем из обоих множеств: после SWITCH_SCENE cleaned
	// пуст, но INIT может прийти и посреди игры (refresh вкладки).
	cells := make([]api.CellView, 0, len(i.Dirty)+len(i.Cleaned))
	appendCells := func(set map[domain.CellID]struct{}, cleaned bool) {
		for id := range set {
			cells = append(cells, api.CellView{
				ID:      id,
				X:       id.X(),
				Z:       id.Z(),
				Surface: id.Surface().String(),
				Height:  sc.SurfaceHeight(id.Surface()),
				Cleaned: cleaned,
			})
		}
	}
	appendCells(i.Dirty, false)
	appendCells(i.Cleaned, true)

	// Детерминированный порядок для клиента и тестов
	sort.Slice(cells, func(a, b int) bool { return cells[a].ID < cells[b].ID })

	cam := systems.FollowCamera(i.AvatarPos, i.FirstPerson)

	return &api.ServerResponse{
		Type:      "INIT",
		Tick:      i.Tick,
		SessionID: i.SessionID,
		Scene: &api.SceneView{
			ID:   string(sc.ID),
			Name: sc.Name,
			Bounds: api.BoundsView{
				MinX: sc.Bounds.MinX,
				MaxX: sc.Bounds.MaxX,
				MinZ: sc.Bounds.MinZ,
				MaxZ: sc.Bounds.MaxZ,
			},
			Props: props,
			Cells: cells,
		},
		Avatar: &api.AvatarView{
			Pos:         i.AvatarPos,
			RotY:        i.AvatarRotY,
			FirstPerson: i.FirstPerson,
		},
		Camera: &api.CameraView{Pos: cam.Pos, LookAt: cam.LookAt},
		Stats:  i.StatsSnapshot(),
		Logs:   i.drainLogs(),
	}
}

// PushInit отправляет INIT-снимок подписчику сессии
func (i *Instance) PushInit() {
	if !i.Service.Hub.HasSubscriber(i.SessionID) {
		return
	}
	i.Service.Hub.SendTo(i.SessionID, *i.BuildInit())
}
