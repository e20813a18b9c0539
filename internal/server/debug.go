package server

import (
	"encoding/json"
	"net/http"

	"github.com/vdurham2244/lavobot-game/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/state", h.handleDumpState)
}

// /debug/sessions - список активных сессий и прогресс уборки в них.
// Снимки собираются горутинами инстансов, мимо их состояния не лазаем.
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summary := h.Service.DebugSnapshots()
	if len(summary) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, summary)
}

// /debug/state?session=abc - дамп одной сессии (позиция, камера, статистика)
func (h *DebugHandler) handleDumpState(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")

	instance := h.Service.GetInstance(sessionID)
	if instance == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	st, ok := instance.RequestDebugState()
	if !ok {
		http.Error(w, "Session already stopped", http.StatusNotFound)
		return
	}

	writeJSON(w, st)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, нет сессий), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
