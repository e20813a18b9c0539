package api

import (
	"encoding/json"

	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// "INIT" несет полное описание сцены (статика + все убираемые клетки),
// "UPDATE" - покадровое состояние (аватар, камера, переходы клеток, статы).
type ServerResponse struct {
	// Type тип сообщения: INIT или UPDATE.
	Type string `json:"type"`

	// Tick номер кадра симуляции внутри текущей сцены.
	Tick int `json:"tick"`

	// SessionID ID сессии данного клиента.
	SessionID string `json:"sessionId,omitempty"`

	// Scene статическое описание активной сцены. Только в INIT.
	Scene *SceneView `json:"scene,omitempty"`

	// Avatar покадровое состояние робота.
	Avatar *AvatarView `json:"avatar,omitempty"`

	// Camera поза камеры после follow-шага этого кадра.
	Camera *CameraView `json:"camera,omitempty"`

	// CleanedCell клетка, перешедшая dirty -> cleaned в ЭТОМ кадре.
	// Не более одной за кадр. Клиент перекрашивает тайл.
	CleanedCell *CellView `json:"cleanedCell,omitempty"`

	// Stats прогресс уборки. Присутствует только когда cleaned-множество
	// выросло (и в INIT для первичной отрисовки счетчика).
	Stats *StatsView `json:"stats,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого кадра.
	Logs []LogEntry `json:"logs,omitempty"`
}

// SceneView содержит всё, что клиенту нужно для построения мешей сцены.
type SceneView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Bounds BoundsView `json:"bounds"`

	// Props статическая геометрия (земля, стены, бассейн, машина...).
	Props []PropView `json:"props"`

	// Cells ВСЕ убираемые клетки сцены. Отправляется один раз,
	// дальше клиент живет на cleanedCell-апдейтах.
	Cells []CellView `json:"cells"`
}

// BoundsView границы движения, чтобы клиент мог нарисовать периметр.
type BoundsView struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinZ float64 `json:"minZ"`
	MaxZ float64 `json:"maxZ"`
}

// PropView это DTO для единицы статической геометрии.
type PropView struct {
	Kind  string      `json:"kind"`
	Pos   domain.Vec3 `json:"pos"`
	Size  domain.Vec3 `json:"size"`
	Color string      `json:"color,omitempty"`
	RotY  float64     `json:"rotY,omitempty"`
}

// CellView это DTO для одной убираемой клетки.
type CellView struct {
	ID      domain.CellID `json:"id"`
	X       int           `json:"x"`
	Z       int           `json:"z"`
	Surface string        `json:"surface"`

	// Height высота тайла для рендера (тип поверхности задает офсет).
	Height float64 `json:"h"`

	// Cleaned true для уже убранных клеток (refresh посреди игры).
	Cleaned bool `json:"cleaned,omitempty"`
}

// AvatarView это DTO покадрового состояния робота.
type AvatarView struct {
	Pos domain.Vec3 `json:"pos"`

	// RotY поворот модели по направлению движения (радианы).
	RotY float64 `json:"rotY"`

	// FirstPerson true, если активен вид от первого лица.
	FirstPerson bool `json:"firstPerson"`
}

// CameraView поза камеры: позиция + точка взгляда.
// Клиентский orbit-контроллер синхронизирует target и вызывает update().
type CameraView struct {
	Pos    domain.Vec3 `json:"pos"`
	LookAt domain.Vec3 `json:"lookAt"`
}

// StatsView прогресс уборки. Progress округлен до одного знака.
type StatsView struct {
	Progress       float64 `json:"progress"`
	CleanedTiles   int     `json:"cleanedTiles"`
	TotalTiles     int     `json:"totalTiles"`
	RemainingTiles int     `json:"remainingTiles"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии. Пустой в первом сообщении - сервер выдаст новый.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, INPUT, SWITCH_SCENE.
	Action string `json:"action"`

	// Payload JSON-объект с данными. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InputPayload - состояние ввода: вектор намерения + клавиша вида.
// Клиент шлет его при КАЖДОМ изменении ввода, не каждый кадр.
type InputPayload struct {
	Ix      int  `json:"ix"` // -1, 0, 1
	Iz      int  `json:"iz"`
	ViewKey bool `json:"viewKey"` // клавиша переключения вида зажата
}

// ScenePayload используется для SWITCH_SCENE.
type ScenePayload struct {
	Scene string `json:"scene"`
}
