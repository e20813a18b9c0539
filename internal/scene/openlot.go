package scene

import (
	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// Константы открытой парковки.
// Три горизонтальные полосы по Z: парковка, проезд, дорога.
const (
	openLotMinX = -28.0
	openLotMaxX = 28.0
	openLotMinZ = -27.0
	openLotMaxZ = 27.0

	// Полосы (включительно по целым клеткам)
	parkingMinZ  = -26
	parkingMaxZ  = -10
	drivewayMinZ = -9
	drivewayMaxZ = 9
	roadMinZ     = 10
	roadMaxZ     = 26
)

// classifyOpenLot разбивает прямоугольник на три полосы по z.
// Клетка вне всех полос (после клампинга к границе) - не убираемая.
func classifyOpenLot(x, z int) Classification {
	if x < openLotMinX || x > openLotMaxX {
		return Classification{}
	}

	switch {
	case z >= parkingMinZ && z <= parkingMaxZ:
		return Classification{Cleanable: true, Surface: domain.SurfaceParking}
	case z >= drivewayMinZ && z <= drivewayMaxZ:
		return Classification{Cleanable: true, Surface: domain.SurfaceDriveway}
	case z >= roadMinZ && z <= roadMaxZ:
		return Classification{Cleanable: true, Surface: domain.SurfaceRoad}
	}

	return Classification{}
}

func newOpenLot() *Scene {
	s := &Scene{
		ID:     domain.SceneOpenLot,
		Name:   "Открытая парковка",
		Bounds: Bounds{MinX: openLotMinX, MaxX: openLotMaxX, MinZ: openLotMinZ, MaxZ: openLotMaxZ},
		// Старт на проезде: высота 0 + смещение модели
		Start:    domain.Vec3{X: 0, Y: AvatarYOffset, Z: 0},
		Classify: classifyOpenLot,
		Heights: map[domain.SurfaceType]float64{
			domain.SurfaceParking:  0.02,
			domain.SurfaceDriveway: 0.0,
			domain.SurfaceRoad:     0.04,
		},
		// Препятствий нет: на открытой парковке только клампинг границ
	}

	s.Props = openLotProps()
	return s
}

// openLotProps - статика для клиента: асфальт, разметка, фонари,
// припаркованные машины (чисто декоративные, движение они не блокируют).
func openLotProps() []Prop {
	props := []Prop{
		{Kind: "ground", Pos: domain.Vec3{X: 0, Y: 0, Z: -18}, Size: domain.Vec3{X: 58, Y: 0.04, Z: 18}, Color: "#3b3b3f"}, // парковка
		{Kind: "ground", Pos: domain.Vec3{X: 0, Y: 0, Z: 0}, Size: domain.Vec3{X: 58, Y: 0.0, Z: 20}, Color: "#46464a"},    // проезд
		{Kind: "ground", Pos: domain.Vec3{X: 0, Y: 0, Z: 18}, Size: domain.Vec3{X: 58, Y: 0.08, Z: 18}, Color: "#2e2e31"},  // дорога
	}

	// Разметка парковочных мест
	for x := -24.0; x <= 24.0; x += 4 {
		props = append(props, Prop{
			Kind: "marking",
			Pos:  domain.Vec3{X: x, Y: 0.03, Z: -18},
			Size: domain.Vec3{X: 0.15, Y: 0.01, Z: 14},
			Color: "#d8d8d0",
		})
	}

	// Фонари по периметру проезда
	for _, x := range []float64{-26, -13, 0, 13, 26} {
		props = append(props, Prop{
			Kind: "lamp",
			Pos:  domain.Vec3{X: x, Y: 0, Z: -9.5},
			Size: domain.Vec3{X: 0.3, Y: 5, Z: 0.3},
			Color: "#9aa0a6",
		})
	}

	// Пара припаркованных машин
	props = append(props,
		Prop{Kind: "vehicle", Pos: domain.Vec3{X: -20, Y: 0, Z: -18}, Size: domain.Vec3{X: 2.2, Y: 1.5, Z: 4.6}, Color: "#7e3b3b"},
		Prop{Kind: "vehicle", Pos: domain.Vec3{X: 8, Y: 0, Z: -18}, Size: domain.Vec3{X: 2.2, Y: 1.5, Z: 4.6}, Color: "#335a7e", RotY: 0.1},
	)

	return props
}
