package scene

import (
	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// Константы гаража
const (
	garageMinX = -12.0
	garageMaxX = 12.0
	garageMinZ = -8.0
	garageMaxZ = 8.0
)

// vehicleFootprint - припаркованная машина: центр (5, -2), полуразмеры (2, 4)
var vehicleFootprint = Box{MinX: 3, MaxX: 7, MinZ: -6, MaxZ: 2}

// classifyGarage: весь прямоугольник убираемый, кроме клеток под машиной
func classifyGarage(x, z int) Classification {
	if x < garageMinX || x > garageMaxX || z < garageMinZ || z > garageMaxZ {
		return Classification{}
	}
	if vehicleFootprint.Contains(float64(x), float64(z)) {
		return Classification{}
	}
	return Classification{Cleanable: true, Surface: domain.SurfaceFloor}
}

func newGarage() *Scene {
	s := &Scene{
		ID:        domain.SceneGarage,
		Name:      "Паркинг-гараж",
		Bounds:    Bounds{MinX: garageMinX, MaxX: garageMaxX, MinZ: garageMinZ, MaxZ: garageMaxZ},
		Start:     domain.Vec3{X: -8, Y: AvatarYOffset, Z: 5},
		Obstacles: []Box{vehicleFootprint},
		Classify:  classifyGarage,
		Heights: map[domain.SurfaceType]float64{
			domain.SurfaceFloor: 0.0,
		},
	}

	s.Props = garageProps()
	return s
}

func garageProps() []Prop {
	props := []Prop{
		{Kind: "ground", Pos: domain.Vec3{X: 0, Y: 0, Z: 0}, Size: domain.Vec3{X: 26, Y: 0.05, Z: 18}, Color: "#57575c"},
		// Потолок и стены (клиент рисует низкий гараж)
		{Kind: "ceiling", Pos: domain.Vec3{X: 0, Y: 3.2, Z: 0}, Size: domain.Vec3{X: 26, Y: 0.3, Z: 18}, Color: "#404045"},
		{Kind: "wall", Pos: domain.Vec3{X: 0, Y: 0, Z: -9.2}, Size: domain.Vec3{X: 26, Y: 3.2, Z: 0.4}, Color: "#6a6a70"},
		{Kind: "wall", Pos: domain.Vec3{X: 0, Y: 0, Z: 9.2}, Size: domain.Vec3{X: 26, Y: 3.2, Z: 0.4}, Color: "#6a6a70"},
		{Kind: "wall", Pos: domain.Vec3{X: -13.2, Y: 0, Z: 0}, Size: domain.Vec3{X: 0.4, Y: 3.2, Z: 18}, Color: "#6a6a70"},
		{Kind: "wall", Pos: domain.Vec3{X: 13.2, Y: 0, Z: 0}, Size: domain.Vec3{X: 0.4, Y: 3.2, Z: 18}, Color: "#6a6a70"},
		// Машина
		{Kind: "vehicle", Pos: domain.Vec3{X: 5, Y: 0, Z: -2}, Size: domain.Vec3{X: 4, Y: 1.6, Z: 8}, Color: "#8a2f2f"},
	}

	// Несущие колонны (декор, в зону машины не попадают)
	for _, p := range []struct{ X, Z float64 }{{-6, -4}, {-6, 4}, {0, -4}, {0, 4}} {
		props = append(props, Prop{
			Kind: "pillar",
			Pos:  domain.Vec3{X: p.X, Y: 0, Z: p.Z},
			Size: domain.Vec3{X: 0.6, Y: 3.2, Z: 0.6},
			Color: "#77777d",
		})
	}

	return props
}
