package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/scene"
	"github.com/vdurham2244/lavobot-game/internal/systems"
	"github.com/vdurham2244/lavobot-game/pkg/api"
	"github.com/vdurham2244/lavobot-game/pkg/logger"
)

// Instance представляет собой одну изолированную игровую сессию:
// активная сцена + всё изменяемое состояние (множества клеток, аватар,
// режим камеры, ввод). Живет в собственной горутине, общение только
// через каналы. Другие сессии этот инстанс не видят.
type Instance struct {
	SessionID string
	Scene     *scene.Scene

	// Состояние мира. Инварианты:
	//   Dirty ∩ Cleaned = ∅
	//   Dirty ∪ Cleaned = все убираемые клетки сцены
	Dirty   map[domain.CellID]struct{}
	Cleaned map[domain.CellID]struct{}

	AvatarPos   domain.Vec3
	AvatarRotY  float64
	FirstPerson bool

	// input - снимок ввода, заменяется целиком командой INPUT.
	// Кадр читает его один раз и никогда не видит полузаписанную пару.
	input          domain.InputFrame
	viewKeyWasDown bool // edge-детект переключения вида

	Tick int // Локальное время сцены (кадры)

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand
	StopChan    chan struct{}
	Done        chan struct{} // закрывается при выходе из Run

	// SnapshotChan - запросы отладочного снимка. Отвечает горутина
	// цикла, поэтому снимок не гоняется с кадром.
	SnapshotChan chan chan DebugState

	// Ссылка на Service для доступа к Hub, тюнингу и реплеям
	Service *Service

	Logs []api.LogEntry // Накопленные сообщения до следующего пуша

	Replay *domain.ReplaySession // Лента ввода текущей сцены
}

func NewInstance(sessionID string, service *Service) *Instance {
	return &Instance{
		SessionID:    sessionID,
		CommandChan:  make(chan domain.InternalCommand, 100),
		StopChan:     make(chan struct{}),
		Done:         make(chan struct{}),
		SnapshotChan: make(chan chan DebugState),
		Service:      service,
	}
}

// LoadScene активирует сцену: полный сброс состояния мира.
// Никакого переноса между сценами - dirty/cleaned строятся заново
// обходом каждой целой пары координат в границах.
func (i *Instance) LoadScene(sc *scene.Scene) {
	i.Scene = sc
	i.Dirty = make(map[domain.CellID]struct{})
	i.Cleaned = make(map[domain.CellID]struct{})

	minX, maxX, minZ, maxZ := sc.CellBounds()
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			if c := sc.Classify(x, z); c.Cleanable {
				i.Dirty[domain.PackCellID(c.Surface, x, z)] = struct{}{}
			}
		}
	}

	i.AvatarPos = sc.Start
	i.AvatarRotY = 0
	i.FirstPerson = false
	i.input = domain.InputFrame{}
	i.viewKeyWasDown = false
	i.Tick = 0

	i.Replay = &domain.ReplaySession{
		Scene:     sc.ID,
		Timestamp: time.Now().Unix(),
		Frames:    make([]domain.ReplayFrame, 0),
	}

	logger.Log.WithFields(map[string]interface{}{
		"session": i.SessionID,
		"scene":   sc.ID,
		"cells":   len(i.Dirty),
	}).Info("Scene loaded")
}

// Run запускает игровой цикл ЭТОГО инстанса.
// Один кадр за тик, команды обрабатываются между кадрами.
func (i *Instance) Run() {
	logger.Log.WithField("session", i.SessionID).Info("Instance loop started")
	defer close(i.Done)

	ticker := time.NewTicker(i.Service.Tuning.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-i.StopChan:
			logger.Log.WithField("session", i.SessionID).Info("Instance loop stopped")
			return

		case cmd := <-i.CommandChan:
			i.executeCommand(cmd)

		case reply := <-i.SnapshotChan:
			reply <- i.debugState()

		case <-ticker.C:
			i.StepFrame()
		}
	}
}

// executeCommand выполняет хендлер и пишет логи
func (i *Instance) executeCommand(cmd domain.InternalCommand) {
	handler, ok := i.Service.actionHandlers[cmd.Action]
	if !ok {
		return
	}

	result, err := handler(i, cmd.Payload)
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"session": i.SessionID,
			"action":  cmd.Action.String(),
		}).Debug("Command rejected")
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		i.AddLog(result.Msg, msgType)
	}
}

// StepFrame выполняет один кадр симуляции. Порядок жесткий:
// ввод -> движение/коллизии -> коммит -> камера -> переход клетки ->
// статы -> пуш. Камера и переход зависят от УЖЕ закоммиченной позиции.
func (i *Instance) StepFrame() {
	i.Tick++
	in := i.input // один атомарный снимок ввода на кадр

	// 1. Edge-детект вида: переключение один раз на НАЖАТИЕ,
	// а не каждый кадр, пока клавиша зажата.
	if in.ViewKey && !i.viewKeyWasDown {
		i.FirstPerson = !i.FirstPerson
	}
	i.viewKeyWasDown = in.ViewKey

	// 2. Движение и коллизии
	res := systems.CalculateMove(i.AvatarPos, in.Intent, i.Service.Tuning.AvatarSpeed, i.Scene)
	i.AvatarPos = res.Pos
	if !in.Intent.IsZero() && !res.Rejected {
		i.AvatarRotY = systems.Facing(in.Intent)
	}

	// 3. Камера следует за закоммиченной позицией
	cam := systems.FollowCamera(i.AvatarPos, i.FirstPerson)

	// 4. Переход dirty -> cleaned (максимум одна клетка за кадр)
	cleanedCell := i.transitionCell()

	// 5. Статы пересчитываются только когда cleaned-множество выросло
	var stats *api.StatsView
	if cleanedCell != nil {
		stats = i.StatsSnapshot()
	}

	// 6. Пуш кадра подписчику (если клиент еще на связи)
	if !i.Service.Hub.HasSubscriber(i.SessionID) {
		return
	}
	i.Service.Hub.SendTo(i.SessionID, api.ServerResponse{
		Type: "UPDATE",
		Tick: i.Tick,
		Avatar: &api.AvatarView{
			Pos:         i.AvatarPos,
			RotY:        i.AvatarRotY,
			FirstPerson: i.FirstPerson,
		},
		Camera:      &api.CameraView{Pos: cam.Pos, LookAt: cam.LookAt},
		CleanedCell: cleanedCell,
		Stats:       stats,
		Logs:        i.drainLogs(),
	})
}

// transitionCell переводит текущую клетку аватара из dirty в cleaned.
// Переход односторонний и одноразовый: повторный визит ничего не меняет.
// Промежуточные клетки, пересеченные за один кадр, не заметаются -
// известное ограничение, ключ только по текущей клетке.
func (i *Instance) transitionCell() *api.CellView {
	x := systems.CellCoord(i.AvatarPos.X)
	z := systems.CellCoord(i.AvatarPos.Z)

	c := i.Scene.Classify(x, z)
	if !c.Cleanable {
		return nil
	}

	id := domain.PackCellID(c.Surface, x, z)
	if _, stillDirty := i.Dirty[id]; !stillDirty {
		return nil // уже убрана
	}

	delete(i.Dirty, id)
	i.Cleaned[id] = struct{}{}

	return &api.CellView{
		ID:      id,
		X:       x,
		Z:       z,
		Surface: c.Surface.String(),
		Height:  i.Scene.SurfaceHeight(c.Surface),
	}
}

// StatsSnapshot собирает отчет о прогрессе уборки.
// Сцена без убираемых клеток: отчета нет вообще (nil), не нулевой отчет.
func (i *Instance) StatsSnapshot() *api.StatsView {
	total := len(i.Dirty) + len(i.Cleaned)
	if total == 0 {
		return nil
	}

	cleaned := len(i.Cleaned)
	progress := math.Round(float64(cleaned)/float64(total)*1000) / 10

	return &api.StatsView{
		Progress:       progress,
		CleanedTiles:   cleaned,
		TotalTiles:     total,
		RemainingTiles: total - cleaned,
	}
}

// setInput заменяет состояние ввода целиком и пишет кадр в реплей
func (i *Instance) setInput(in domain.InputFrame) {
	if in == i.input {
		return // ничего не поменялось, ленту не засоряем
	}
	i.input = in

	i.Replay.Frames = append(i.Replay.Frames, domain.ReplayFrame{
		Tick:    i.Tick,
		IntentX: int8(in.Intent.X),
		IntentZ: int8(in.Intent.Z),
		ViewKey: in.ViewKey,
	})
}

func (i *Instance) AddLog(text, logType string) {
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}

// DebugState - снимок состояния сессии для отладочных роутов.
// Все поля скопированы горутиной самого инстанса между кадрами:
// читать поля инстанса из чужой горутины напрямую нельзя.
type DebugState struct {
	SessionID   string         `json:"session_id"`
	Scene       domain.SceneID `json:"scene"`
	Tick        int            `json:"tick"`
	Dirty       int            `json:"dirty"`
	Cleaned     int            `json:"cleaned"`
	AvatarPos   domain.Vec3    `json:"avatar_pos"`
	AvatarRotY  float64        `json:"avatar_rot_y"`
	FirstPerson bool           `json:"first_person"`
	Stats       *api.StatsView `json:"stats"`
}

func (i *Instance) debugState() DebugState {
	return DebugState{
		SessionID:   i.SessionID,
		Scene:       i.Scene.ID,
		Tick:        i.Tick,
		Dirty:       len(i.Dirty),
		Cleaned:     len(i.Cleaned),
		AvatarPos:   i.AvatarPos,
		AvatarRotY:  i.AvatarRotY,
		FirstPerson: i.FirstPerson,
		Stats:       i.StatsSnapshot(),
	}
}

// RequestDebugState запрашивает снимок у цикла инстанса.
// Возвращает false, если инстанс уже остановлен.
func (i *Instance) RequestDebugState() (DebugState, bool) {
	reply := make(chan DebugState, 1)

	select {
	case i.SnapshotChan <- reply:
	case <-i.Done:
		return DebugState{}, false
	}

	select {
	case st := <-reply:
		return st, true
	case <-i.Done:
		return DebugState{}, false
	}
}

// drainLogs отдает накопленные сообщения и очищает буфер
func (i *Instance) drainLogs() []api.LogEntry {
	if len(i.Logs) == 0 {
		return nil
	}
	logs := i.Logs
	i.Logs = nil
	return logs
}
