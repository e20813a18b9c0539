package domain

// SceneID - идентификатор игрового окружения
type SceneID string

const (
	SceneOpenLot  SceneID = "OPEN_LOT"  // Открытая парковка (3 полосы)
	ScenePoolside SceneID = "POOLSIDE"  // Двор с бассейном
	SceneGarage   SceneID = "GARAGE"    // Паркинг-гараж
)

// IsValid проверяет, что сцена нам известна
func (s SceneID) IsValid() bool {
	switch s {
	case SceneOpenLot, ScenePoolside, SceneGarage:
		return true
	}
	return false
}

// SurfaceType - тип поверхности клетки.
// Влияет ТОЛЬКО на высоту отрисовки, не на игровую логику.
type SurfaceType uint8

const (
	SurfaceNone SurfaceType = iota
	SurfaceParking
	SurfaceDriveway
	SurfaceRoad
	SurfaceDeck
	SurfaceFloor
)

var surfaceToString = map[SurfaceType]string{
	SurfaceNone:     "none",
	SurfaceParking:  "parking",
	SurfaceDriveway: "driveway",
	SurfaceRoad:     "road",
	SurfaceDeck:     "deck",
	SurfaceFloor:    "floor",
}

// String реализует интерфейс Stringer (для fmt.Printf и DTO)
func (s SurfaceType) String() string {
	if val, ok := surfaceToString[s]; ok {
		return val
	}
	return "none"
}

// Vec3 - непрерывная позиция в мире (координаты рендера)
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add возвращает новую позицию со смещением (не меняя текущую,
// т.к. Go передает структуры по значению, если не указатель)
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Intent - вектор намерения движения. Компоненты строго {-1, 0, 1}.
type Intent struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// IsZero возвращает true, если движения нет
func (i Intent) IsZero() bool {
	return i.X == 0 && i.Z == 0
}

// InputFrame - полное состояние ввода на один кадр.
// Заменяется целиком (atomic replace): цикл кадра никогда не видит
// наполовину записанную пару (X, Z).
type InputFrame struct {
	Intent  Intent
	ViewKey bool // зажата ли клавиша переключения вида (edge-детект в движке)
}
