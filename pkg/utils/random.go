package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionID создает простой уникальный ID сессии (замена UUID для снижения зависимостей)
func GenerateSessionID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random session ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}
