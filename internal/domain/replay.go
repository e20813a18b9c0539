package domain

// ReplayFrame - это запись ввода на один кадр симуляции.
// Кадры без изменения ввода не записываются: при воспроизведении
// последнее значение действует до следующей записи.
type ReplayFrame struct {
	Tick    int  `json:"tick"`
	IntentX int8 `json:"ix"` // -1, 0, 1
	IntentZ int8 `json:"iz"`
	ViewKey bool `json:"viewKey"`
}

// ReplaySession - полная запись игровой сессии
type ReplaySession struct {
	Scene     SceneID       `json:"scene"`
	Timestamp int64         `json:"timestamp"`
	Frames    []ReplayFrame `json:"frames"`
}
