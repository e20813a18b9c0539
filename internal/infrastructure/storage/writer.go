package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/vdurham2244/lavobot-game/internal/domain"
)

const (
	MagicHeader string = `LVRP` // 4 байта
	Version1    uint32 = 1
)

// replayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк,
// только массивы и числа. Заголовок НЕ сжимается, чтобы файл можно было
// опознать по первым байтам.
type replayFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Timestamp  int64   // 8 байт
	FrameCount int32   // 4 байта
	SceneLen   uint8   // 1 байт
	_          [3]byte // выравнивание до 24 байт
}

// frameRecord - бинарная запись одного кадра ввода (8 байт).
// Лента кадров пишется одним binary.Write и сжимается zstd:
// записи монотонны по тикам и жмутся в разы.
type frameRecord struct {
	Tick    int32
	IntentX int8
	IntentZ int8
	ViewKey uint8
	_       uint8
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &ReplayService{SaveDir: dir}
}

func (s *ReplayService) Save(session *domain.ReplaySession) error {
	filename := fmt.Sprintf("replay_%s_%d.lvrp", session.Scene, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeBinary(f, session)
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	sceneBytes := []byte(s.Scene)
	if len(sceneBytes) > 255 {
		return fmt.Errorf("scene id too long: %d", len(sceneBytes))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := replayFileHeader{
		Version:    Version1,
		Timestamp:  s.Timestamp,
		FrameCount: int32(len(s.Frames)),
		SceneLen:   uint8(len(sceneBytes)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(sceneBytes); err != nil {
		return err
	}

	// 2. Лента кадров - одним куском через zstd
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to init zstd writer: %w", err)
	}

	records := make([]frameRecord, len(s.Frames))
	for i, fr := range s.Frames {
		records[i] = frameRecord{
			Tick:    int32(fr.Tick),
			IntentX: fr.IntentX,
			IntentZ: fr.IntentZ,
			ViewKey: boolToByte(fr.ViewKey),
		}
	}

	if err := binary.Write(enc, binary.LittleEndian, records); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to write frames: %w", err)
	}

	return enc.Close()
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
