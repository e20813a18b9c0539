package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// maxReplayFrames - потолок числа кадров в файле. Запись в ленту идет
// только при смене ввода, так что миллионы записей - это битый файл,
// а не длинная сессия. Без проверки счетчик из заголовка напрямую
// уходит в make и отрицательное значение роняет процесс.
const maxReplayFrames = 1 << 22

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header replayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.FrameCount < 0 || header.FrameCount > maxReplayFrames {
		return nil, fmt.Errorf("implausible frame count: %d", header.FrameCount)
	}

	sceneBuf := make([]byte, header.SceneLen)
	if _, err := io.ReadFull(r, sceneBuf); err != nil {
		return nil, fmt.Errorf("failed to read scene id: %w", err)
	}

	session := &domain.ReplaySession{
		Scene:     domain.SceneID(sceneBuf),
		Timestamp: header.Timestamp,
		Frames:    make([]domain.ReplayFrame, header.FrameCount),
	}

	// 2. Лента кадров - сжатый хвост файла
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to init zstd reader: %w", err)
	}
	defer dec.Close()

	records := make([]frameRecord, header.FrameCount)
	if err := binary.Read(dec, binary.LittleEndian, records); err != nil {
		return nil, fmt.Errorf("failed to read frames: %w", err)
	}

	for i, rec := range records {
		session.Frames[i] = domain.ReplayFrame{
			Tick:    int(rec.Tick),
			IntentX: rec.IntentX,
			IntentZ: rec.IntentZ,
			ViewKey: rec.ViewKey != 0,
		}
	}

	return session, nil
}
