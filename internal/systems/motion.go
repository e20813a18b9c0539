package systems

import (
	"math"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/scene"
)

// MoveResult - результат вычисления движения
type MoveResult struct {
	Pos      domain.Vec3
	HasMoved bool // позиция изменилась хоть по одной оси
	Rejected bool // кандидат попал в запретную зону, кадр движения отброшен
}

// CalculateMove вычисляет новую позицию аватара. Не меняет состояние мира!
//
// Порядок строго по кадру: кандидат = current + intent*speed (по осям
// независимо); попадание кандидата в запретную зону отбрасывает ВЕСЬ
// апдейт кадра; иначе клампим каждую ось к границам сцены и снэпим Y
// к высоте поверхности клетки.
func CalculateMove(current domain.Vec3, intent domain.Intent, speed float64, sc *scene.Scene) MoveResult {
	candidate := domain.Vec3{
		X: current.X + float64(intent.X)*speed,
		Y: current.Y,
		Z: current.Z + float64(intent.Z)*speed,
	}

	// 1. Запретные зоны (бассейн, кашпо, машина).
	// Проверяем ДО клампинга: клампинг - это путь по умолчанию, а не отказ.
	if sc.Blocked(candidate.X, candidate.Z) {
		return MoveResult{Pos: current, Rejected: true}
	}

	// 2. Клампинг к границам, каждая ось отдельно
	candidate.X = clamp(candidate.X, sc.Bounds.MinX, sc.Bounds.MaxX)
	candidate.Z = clamp(candidate.Z, sc.Bounds.MinZ, sc.Bounds.MaxZ)

	// 3. Снэп высоты. Это не физика, а детерминированная подстановка.
	// Если клетка после клампинга вне всех полос (бывает только на
	// открытой парковке у самой границы), оставляем высоту прошлого
	// кадра. Известная причуда оригинального поведения, не чинить.
	c := sc.Classify(CellCoord(candidate.X), CellCoord(candidate.Z))
	if c.Cleanable {
		candidate.Y = sc.SurfaceHeight(c.Surface) + scene.AvatarYOffset
	}

	moved := candidate.X != current.X || candidate.Z != current.Z || candidate.Y != current.Y
	return MoveResult{Pos: candidate, HasMoved: moved}
}

// CellCoord округляет непрерывную координату до ближайшей целой клетки
func CellCoord(v float64) int {
	return int(math.Round(v))
}

// Facing возвращает угол поворота модели по вектору намерения (радианы).
// Для нулевого вектора поворот не меняется - вызывающий это учитывает.
func Facing(intent domain.Intent) float64 {
	return math.Atan2(float64(intent.X), float64(intent.Z))
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
