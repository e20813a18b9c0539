package engine

import (
	"encoding/json"
	"testing"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/scene"
	"github.com/vdurham2244/lavobot-game/pkg/api"
)

// Helper: инстанс с загруженной сценой, без горутины и без подписчиков
func setupInstance(t *testing.T, id domain.SceneID) *Instance {
	t.Helper()

	svc := NewService(NewTuning())
	inst := NewInstance("test-session", svc)

	sc, ok := scene.Get(id)
	if !ok {
		t.Fatalf("scene %q not registered", id)
	}
	inst.LoadScene(sc)
	return inst
}

// Helper: проверка инвариантов множеств клеток
func checkCellInvariants(t *testing.T, inst *Instance, wantTotal int) {
	t.Helper()

	for id := range inst.Cleaned {
		if _, both := inst.Dirty[id]; both {
			t.Fatalf("cell %s is both dirty and cleaned", id)
		}
	}
	if got := len(inst.Dirty) + len(inst.Cleaned); got != wantTotal {
		t.Fatalf("cell sets total = %d, want %d", got, wantTotal)
	}
}

func TestLoadScene_SeedsDirtyCells(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// 57x53 целых пар координат, все три полосы убираемые
	if got := len(inst.Dirty); got != 3021 {
		t.Errorf("dirty cells = %d, want 3021", got)
	}
	if len(inst.Cleaned) != 0 {
		t.Errorf("cleaned must start empty, got %d", len(inst.Cleaned))
	}
	if inst.AvatarPos != inst.Scene.Start {
		t.Errorf("avatar at %v, want scene start %v", inst.AvatarPos, inst.Scene.Start)
	}
	if inst.Tick != 0 {
		t.Errorf("tick = %d, want 0", inst.Tick)
	}
}

func TestStepFrame_CleansCurrentCell(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// Робот стоит на (0,0) - проезд. Клетка убирается даже без движения.
	inst.StepFrame()

	if got := len(inst.Cleaned); got != 1 {
		t.Fatalf("cleaned = %d, want 1", got)
	}

	stats := inst.StatsSnapshot()
	if stats == nil {
		t.Fatal("expected stats report")
	}
	if stats.CleanedTiles != 1 || stats.TotalTiles != 3021 {
		t.Errorf("stats = %d/%d, want 1/3021", stats.CleanedTiles, stats.TotalTiles)
	}
	if stats.RemainingTiles != 3020 {
		t.Errorf("remaining = %d, want 3020", stats.RemainingTiles)
	}
}

func TestStepFrame_RevisitIsIdempotent(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// Стоим на месте десять кадров - клетка убирается ровно один раз
	for f := 0; f < 10; f++ {
		inst.StepFrame()
	}

	if got := len(inst.Cleaned); got != 1 {
		t.Errorf("cleaned = %d after 10 idle frames, want 1", got)
	}
	checkCellInvariants(t, inst, 3021)
}

func TestStepFrame_DriveCleansPath(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)
	inst.setInput(domain.InputFrame{Intent: domain.Intent{X: 1}})

	prevCleaned := 0
	for f := 0; f < 100; f++ {
		inst.StepFrame()

		// Множество убранных только растет
		if len(inst.Cleaned) < prevCleaned {
			t.Fatalf("cleaned shrank at frame %d: %d -> %d", f, prevCleaned, len(inst.Cleaned))
		}
		prevCleaned = len(inst.Cleaned)
		checkCellInvariants(t, inst, 3021)
	}

	// 100 кадров по 0.15: x доехал до 15.0, клетки 0..15 по пути
	if got := len(inst.Cleaned); got != 16 {
		t.Errorf("cleaned = %d, want 16", got)
	}
}

func TestStepFrame_ParkingBandReportsSurface(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// Ставим робота прямо перед парковочной полосой и заезжаем на нее
	inst.AvatarPos = domain.Vec3{X: 0, Y: scene.AvatarYOffset, Z: -9.6}
	inst.transitionCell() // текущая клетка (0,-10) уже на полосе, съедаем ее заранее
	before := len(inst.Cleaned)

	inst.setInput(domain.InputFrame{Intent: domain.Intent{Z: -1}})
	for f := 0; f < 7; f++ { // z: -9.6 -> -10.65, клетка (0,-11)
		inst.StepFrame()
	}

	if got := len(inst.Cleaned); got != before+1 {
		t.Fatalf("cleaned = %d, want exactly one new cell (had %d)", got, before)
	}

	c := inst.Scene.Classify(0, -11)
	if !c.Cleanable || c.Surface.String() != "parking" {
		t.Errorf("cell (0,-11) = %+v, want cleanable parking", c)
	}
	id := domain.PackCellID(c.Surface, 0, -11)
	if _, ok := inst.Cleaned[id]; !ok {
		t.Error("parking cell not in cleaned set")
	}
}

func TestStepFrame_ObstacleRejectsFrame(t *testing.T) {
	inst := setupInstance(t, domain.ScenePoolside)

	// Робот у кромки бассейна, едет прямо в воду
	inst.AvatarPos = domain.Vec3{X: 0, Y: scene.AvatarYOffset, Z: 4.1}
	inst.AvatarRotY = 1.5
	inst.setInput(domain.InputFrame{Intent: domain.Intent{Z: -1}})

	inst.StepFrame()

	// Кадр отброшен целиком: ни позиция, ни поворот не меняются
	if inst.AvatarPos.Z != 4.1 {
		t.Errorf("avatar z = %v, want 4.1 (move into pool must be rejected)", inst.AvatarPos.Z)
	}
	if inst.AvatarRotY != 1.5 {
		t.Errorf("rotation changed on rejected frame: %v", inst.AvatarRotY)
	}
}

func TestStepFrame_BoundaryClamps(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// У восточной границы (x=28) движение наружу превращается в кламп
	inst.AvatarPos = domain.Vec3{X: 27.95, Y: scene.AvatarYOffset, Z: 0}
	inst.setInput(domain.InputFrame{Intent: domain.Intent{X: 1}})

	inst.StepFrame()

	if inst.AvatarPos.X != 28 {
		t.Errorf("avatar x = %v, want clamped to 28", inst.AvatarPos.X)
	}
}

func TestStepFrame_ViewToggleIsEdgeTriggered(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// Нажатие переключает один раз
	inst.setInput(domain.InputFrame{ViewKey: true})
	inst.StepFrame()
	if !inst.FirstPerson {
		t.Fatal("view key press must switch to first person")
	}

	// Удержание НЕ переключает каждый кадр
	for f := 0; f < 5; f++ {
		inst.StepFrame()
	}
	if !inst.FirstPerson {
		t.Fatal("held view key must not toggle again")
	}

	// Отпустили и нажали снова - обратно в третье лицо
	inst.setInput(domain.InputFrame{ViewKey: false})
	inst.StepFrame()
	inst.setInput(domain.InputFrame{ViewKey: true})
	inst.StepFrame()
	if inst.FirstPerson {
		t.Fatal("second press must switch back to third person")
	}
}

func TestStatsSnapshot_EmptySceneNoReport(t *testing.T) {
	svc := NewService(NewTuning())
	inst := NewInstance("test-session", svc)

	// Сцена без единой убираемой клетки
	inst.LoadScene(&scene.Scene{
		ID:     "TEST_EMPTY",
		Name:   "Пустая площадка",
		Bounds: scene.Bounds{MinX: -2, MaxX: 2, MinZ: -2, MaxZ: 2},
		Start:  domain.Vec3{Y: scene.AvatarYOffset},
		Classify: func(x, z int) scene.Classification {
			return scene.Classification{}
		},
	})

	if stats := inst.StatsSnapshot(); stats != nil {
		t.Errorf("expected no stats report for empty scene, got %+v", stats)
	}

	// Кадр на такой сцене не паникует и ничего не убирает
	inst.StepFrame()
	if len(inst.Cleaned) != 0 {
		t.Errorf("cleaned = %d on empty scene, want 0", len(inst.Cleaned))
	}
}

func TestStatsSnapshot_ProgressRounding(t *testing.T) {
	svc := NewService(NewTuning())
	inst := NewInstance("test-session", svc)

	// Три убираемые клетки: одна убрана = 33.3%, не 33.33
	inst.LoadScene(&scene.Scene{
		ID:     "TEST_STRIP",
		Name:   "Полоска",
		Bounds: scene.Bounds{MinX: -1, MaxX: 1, MinZ: 0, MaxZ: 0},
		Start:  domain.Vec3{Y: scene.AvatarYOffset},
		Classify: func(x, z int) scene.Classification {
			return scene.Classification{Cleanable: true, Surface: domain.SurfaceFloor}
		},
	})

	if got := len(inst.Dirty); got != 3 {
		t.Fatalf("dirty = %d, want 3", got)
	}

	inst.StepFrame() // убирает клетку (0,0)

	stats := inst.StatsSnapshot()
	if stats == nil {
		t.Fatal("expected stats report")
	}
	if stats.Progress != 33.3 {
		t.Errorf("progress = %v, want 33.3", stats.Progress)
	}
}

func TestSwitchScene_ResetsState(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	// Немного поиграли
	inst.StepFrame()
	inst.StepFrame()

	payload, _ := json.Marshal(api.ScenePayload{Scene: string(domain.ScenePoolside)})
	if _, err := inst.Service.actionHandlers[domain.ActionSwitchScene](inst, payload); err != nil {
		t.Fatalf("switch scene failed: %v", err)
	}

	if inst.Scene.ID != domain.ScenePoolside {
		t.Fatalf("scene = %s, want POOLSIDE", inst.Scene.ID)
	}
	if inst.Tick != 0 {
		t.Errorf("tick = %d, want reset to 0", inst.Tick)
	}
	if len(inst.Cleaned) != 0 {
		t.Errorf("cleaned = %d, want 0 after scene switch", len(inst.Cleaned))
	}
	if got := len(inst.Dirty); got != 456 {
		t.Errorf("dirty = %d, want 456 deck cells", got)
	}
	if inst.AvatarPos != inst.Scene.Start {
		t.Errorf("avatar at %v, want poolside start %v", inst.AvatarPos, inst.Scene.Start)
	}
	if inst.FirstPerson {
		t.Error("view mode must reset to third person")
	}
}

func TestSwitchScene_SameSceneIsNoop(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)
	inst.StepFrame() // одна клетка убрана

	payload, _ := json.Marshal(api.ScenePayload{Scene: string(domain.SceneOpenLot)})
	if _, err := inst.Service.actionHandlers[domain.ActionSwitchScene](inst, payload); err != nil {
		t.Fatalf("same-scene switch must not error: %v", err)
	}

	if got := len(inst.Cleaned); got != 1 {
		t.Errorf("cleaned = %d, want 1 (progress must survive same-scene switch)", got)
	}
}

func TestSwitchScene_UnknownRejected(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	payload, _ := json.Marshal(api.ScenePayload{Scene: "BASEMENT"})
	if _, err := inst.Service.actionHandlers[domain.ActionSwitchScene](inst, payload); err == nil {
		t.Error("expected error for unknown scene")
	}
	if inst.Scene.ID != domain.SceneOpenLot {
		t.Errorf("scene changed to %s on rejected switch", inst.Scene.ID)
	}
}

func TestSetInput_RecordsReplayOnce(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)

	in := domain.InputFrame{Intent: domain.Intent{X: 1}}
	inst.setInput(in)
	inst.setInput(in) // дубликат не пишется

	if got := len(inst.Replay.Frames); got != 1 {
		t.Fatalf("replay frames = %d, want 1", got)
	}

	inst.setInput(domain.InputFrame{Intent: domain.Intent{X: 1}, ViewKey: true})
	if got := len(inst.Replay.Frames); got != 2 {
		t.Errorf("replay frames = %d, want 2", got)
	}
}

func TestBuildInit_FullSnapshot(t *testing.T) {
	inst := setupInstance(t, domain.SceneOpenLot)
	inst.StepFrame() // клетка (0,0) уже убрана

	snap := inst.BuildInit()

	if snap.Type != "INIT" {
		t.Errorf("type = %s, want INIT", snap.Type)
	}
	if snap.Scene == nil {
		t.Fatal("scene view missing")
	}
	if got := len(snap.Scene.Cells); got != 3021 {
		t.Fatalf("snapshot cells = %d, want 3021", got)
	}

	// Порядок детерминированный, убранная клетка помечена
	cleanedCount := 0
	for idx := 1; idx < len(snap.Scene.Cells); idx++ {
		if snap.Scene.Cells[idx-1].ID >= snap.Scene.Cells[idx].ID {
			t.Fatal("snapshot cells not sorted by ID")
		}
	}
	for _, c := range snap.Scene.Cells {
		if c.Cleaned {
			cleanedCount++
		}
	}
	if cleanedCount != 1 {
		t.Errorf("cleaned cells in snapshot = %d, want 1", cleanedCount)
	}

	if snap.Stats == nil || snap.Stats.CleanedTiles != 1 {
		t.Errorf("snapshot stats = %+v, want 1 cleaned", snap.Stats)
	}
}
