package domain

import (
	"fmt"
	"strconv"
)

// CellID - упакованный идентификатор клетки (SurfaceType + X + Z)
type CellID uint64

// Конфигурация битов
const (
	bitsCoord = 20 // хватает на координаты до ±524287
	bitsType  = 8

	// Сдвиги
	shiftX    = bitsCoord
	shiftType = bitsCoord * 2

	// Маски (для извлечения значений)
	maskCoord = (1 << bitsCoord) - 1 // 0xFFFFF
	maskType  = (1 << bitsType) - 1  // 0xFF

	// Смещение, чтобы хранить отрицательные координаты без знака
	coordOffset = 1 << (bitsCoord - 1)
)

// --- КОНСТРУКТОР ---

// PackCellID создает ID клетки из компонентов.
// Округленные координаты аватара + тип поверхности дают уникальный ключ
// для множеств dirty/cleaned.
func PackCellID(surface SurfaceType, x, z int) CellID {
	id := uint64(uint32(z+coordOffset)) & maskCoord
	id |= (uint64(uint32(x+coordOffset)) & maskCoord) << shiftX
	id |= (uint64(surface) & maskType) << shiftType
	return CellID(id)
}

// --- МЕТОДЫ ДОСТУПА ---

func (id CellID) Surface() SurfaceType {
	return SurfaceType((id >> shiftType) & maskType)
}

func (id CellID) X() int {
	return int((id>>shiftX)&maskCoord) - coordOffset
}

func (id CellID) Z() int {
	return int(id&maskCoord) - coordOffset
}

// --- СЕРИАЛИЗАЦИЯ (Для фронтенда) ---

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id CellID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *CellID) UnmarshalJSON(data []byte) error {
	// Удаляем кавычки, если есть
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = CellID(val)
	return nil
}

// String для логов: выводим красиво [surface:x:z]
func (id CellID) String() string {
	return fmt.Sprintf("[%s:%d:%d]", id.Surface(), id.X(), id.Z())
}
