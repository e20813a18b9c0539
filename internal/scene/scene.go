package scene

import (
	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// AvatarYOffset - визуальное смещение модели робота над поверхностью.
// Подобрано под конкретную модель, не трогать без замены ассета.
const AvatarYOffset = 0.069

// Bounds - прямоугольные границы движения (клампинг по каждой оси отдельно)
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Box - осевыровненный прямоугольник запретной зоны (бассейн, кашпо, машина)
type Box struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Contains проверяет попадание точки внутрь зоны (границы включительно)
func (b Box) Contains(x, z float64) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}

// Classification - результат проверки клетки
type Classification struct {
	Cleanable bool
	Surface   domain.SurfaceType
}

// ClassifyFunc - чистая функция от целочисленных координат и констант сцены.
// Никаких побочных эффектов.
type ClassifyFunc func(x, z int) Classification

// Scene описывает одно игровое окружение целиком: границы, стартовую
// позицию, запретные зоны, классификатор клеток и статическую геометрию
// для клиента. Собирается один раз, после этого никогда не мутирует.
type Scene struct {
	ID    domain.SceneID
	Name  string // Человекочитаемое имя для UI

	Bounds Bounds
	Start  domain.Vec3

	// Obstacles - зоны, в которые аватар не может войти.
	// Пустой список = только клампинг по границам (открытая парковка).
	Obstacles []Box

	Classify ClassifyFunc

	// Heights - высота поверхности по типу. Отсутствующий тип = 0.
	Heights map[domain.SurfaceType]float64

	Props []Prop
}

// Blocked возвращает true, если точка внутри хотя бы одной запретной зоны
func (s *Scene) Blocked(x, z float64) bool {
	for _, box := range s.Obstacles {
		if box.Contains(x, z) {
			return true
		}
	}
	return false
}

// SurfaceHeight возвращает высоту поверхности для типа клетки
func (s *Scene) SurfaceHeight(surface domain.SurfaceType) float64 {
	return s.Heights[surface]
}

// CellBounds возвращает целочисленный охват сцены для инициализации
// множеств dirty/cleaned (обходим каждую целую пару координат).
func (s *Scene) CellBounds() (minX, maxX, minZ, maxZ int) {
	return int(s.Bounds.MinX), int(s.Bounds.MaxX), int(s.Bounds.MinZ), int(s.Bounds.MaxZ)
}

// Prop - единица статической геометрии для рендера на клиенте.
// Сервер не интерпретирует эти данные, кроме как отдать их при INIT.
type Prop struct {
	Kind  string      `json:"kind"` // ground, wall, pool, planter, vehicle, lamp, marking
	Pos   domain.Vec3 `json:"pos"`
	Size  domain.Vec3 `json:"size"`
	Color string      `json:"color,omitempty"`
	RotY  float64     `json:"rotY,omitempty"`
}

// --- РЕЕСТР СЦЕН ---

var registry = map[domain.SceneID]*Scene{}

func init() {
	for _, s := range []*Scene{newOpenLot(), newPoolside(), newGarage()} {
		registry[s.ID] = s
	}
}

// Get возвращает сцену по ID
func Get(id domain.SceneID) (*Scene, bool) {
	s, ok := registry[id]
	return s, ok
}

// Default - сцена, с которой начинается сессия
func Default() *Scene {
	return registry[domain.SceneOpenLot]
}
