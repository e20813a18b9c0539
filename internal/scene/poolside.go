package scene

import (
	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// Константы двора с бассейном
const (
	poolsideMinX = -14.0
	poolsideMaxX = 14.0
	poolsideMinZ = -10.0
	poolsideMaxZ = 10.0

	planterHalf = 1.5 // полуразмер коробки кашпо
)

// poolBounds - запретная зона воды. Аватар не заходит, клетки не убираются.
var poolBounds = Box{MinX: -6, MaxX: 6, MinZ: -4, MaxZ: 4}

// planterCenters - четыре кашпо по углам двора
var planterCenters = [4]struct{ X, Z float64 }{
	{X: -10, Z: -7},
	{X: 10, Z: -7},
	{X: -10, Z: 7},
	{X: 10, Z: 7},
}

func planterBoxes() []Box {
	boxes := make([]Box, 0, len(planterCenters))
	for _, c := range planterCenters {
		boxes = append(boxes, Box{
			MinX: c.X - planterHalf, MaxX: c.X + planterHalf,
			MinZ: c.Z - planterHalf, MaxZ: c.Z + planterHalf,
		})
	}
	return boxes
}

// classifyPoolside: весь прямоугольник убираемый, КРОМЕ клеток внутри
// бассейна и в радиусе кашпо (тест точка-в-коробке по каждому кашпо).
func classifyPoolside(x, z int) Classification {
	if x < poolsideMinX || x > poolsideMaxX || z < poolsideMinZ || z > poolsideMaxZ {
		return Classification{}
	}

	fx, fz := float64(x), float64(z)
	if poolBounds.Contains(fx, fz) {
		return Classification{}
	}
	for _, c := range planterCenters {
		if fx >= c.X-planterHalf && fx <= c.X+planterHalf &&
			fz >= c.Z-planterHalf && fz <= c.Z+planterHalf {
			return Classification{}
		}
	}

	return Classification{Cleanable: true, Surface: domain.SurfaceDeck}
}

func newPoolside() *Scene {
	obstacles := append([]Box{poolBounds}, planterBoxes()...)

	s := &Scene{
		ID:       domain.ScenePoolside,
		Name:     "Двор с бассейном",
		Bounds:   Bounds{MinX: poolsideMinX, MaxX: poolsideMaxX, MinZ: poolsideMinZ, MaxZ: poolsideMaxZ},
		Start:    domain.Vec3{X: 0, Y: AvatarYOffset, Z: 8},
		Obstacles: obstacles,
		Classify: classifyPoolside,
		Heights: map[domain.SurfaceType]float64{
			domain.SurfaceDeck: 0.0,
		},
	}

	s.Props = poolsideProps()
	return s
}

func poolsideProps() []Prop {
	props := []Prop{
		{Kind: "ground", Pos: domain.Vec3{X: 0, Y: 0, Z: 0}, Size: domain.Vec3{X: 30, Y: 0.05, Z: 22}, Color: "#c8b89a"}, // плитка двора
		{Kind: "pool", Pos: domain.Vec3{X: 0, Y: -0.3, Z: 0}, Size: domain.Vec3{X: 12, Y: 0.3, Z: 8}, Color: "#2a7fb5"},
		// Дом вдоль северной границы
		{Kind: "wall", Pos: domain.Vec3{X: 0, Y: 0, Z: -11.5}, Size: domain.Vec3{X: 30, Y: 4, Z: 1}, Color: "#d9cdbf"},
	}

	for _, c := range planterCenters {
		props = append(props, Prop{
			Kind: "planter",
			Pos:  domain.Vec3{X: c.X, Y: 0, Z: c.Z},
			Size: domain.Vec3{X: planterHalf * 2, Y: 1.1, Z: planterHalf * 2},
			Color: "#6b4f35",
		})
	}

	// Шезлонги у воды (декор)
	props = append(props,
		Prop{Kind: "lounger", Pos: domain.Vec3{X: -3, Y: 0, Z: 6}, Size: domain.Vec3{X: 0.8, Y: 0.4, Z: 2}, Color: "#e8e2d4", RotY: 0.2},
		Prop{Kind: "lounger", Pos: domain.Vec3{X: 3, Y: 0, Z: 6}, Size: domain.Vec3{X: 0.8, Y: 0.4, Z: 2}, Color: "#e8e2d4", RotY: -0.15},
	)

	return props
}
