package engine

import (
	"fmt"
	"sync"

	"github.com/vdurham2244/lavobot-game/internal/domain"
	"github.com/vdurham2244/lavobot-game/internal/infrastructure/storage"
	"github.com/vdurham2244/lavobot-game/internal/network"
	"github.com/vdurham2244/lavobot-game/internal/scene"
	"github.com/vdurham2244/lavobot-game/pkg/api"
	"github.com/vdurham2244/lavobot-game/pkg/logger"
)

// Service владеет всеми игровыми сессиями процесса.
// Игра одиночная: одна сессия = один инстанс = одна горутина.
type Service struct {
	Tuning  Tuning
	Hub     *network.Broadcaster
	Replays *storage.ReplayService // nil = запись реплеев выключена

	mu        sync.RWMutex
	Instances map[string]*Instance

	actionHandlers map[domain.ActionType]HandlerFunc
}

func NewService(tuning Tuning) *Service {
	s := &Service{
		Tuning:         tuning,
		Hub:            network.NewBroadcaster(),
		Instances:      make(map[string]*Instance),
		actionHandlers: make(map[domain.ActionType]HandlerFunc),
	}
	s.registerHandlers()
	return s
}

func (s *Service) registerHandlers() {
	s.actionHandlers[domain.ActionInit] = WithEmptyPayload(handleInit)
	s.actionHandlers[domain.ActionInput] = WithPayload(handleInput)
	s.actionHandlers[domain.ActionSwitchScene] = WithPayload(handleSwitchScene)
}

// StartSession создает инстанс для новой сессии и запускает его цикл.
// Сессия всегда начинается со сцены по умолчанию.
func (s *Service) StartSession(sessionID string) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Instances) >= s.Tuning.MaxSessions {
		return nil, fmt.Errorf("session limit reached: %d", s.Tuning.MaxSessions)
	}
	if _, exists := s.Instances[sessionID]; exists {
		return nil, fmt.Errorf("session already active: %s", sessionID)
	}

	inst := NewInstance(sessionID, s)
	inst.LoadScene(scene.Default())
	s.Instances[sessionID] = inst

	go inst.Run()
	return inst, nil
}

// StopSession останавливает цикл сессии и сбрасывает реплей на диск
func (s *Service) StopSession(sessionID string) {
	s.mu.Lock()
	inst, ok := s.Instances[sessionID]
	if ok {
		delete(s.Instances, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	close(inst.StopChan)
	<-inst.Done // дождаться выхода из цикла, потом трогать состояние

	s.flushReplay(inst)
	logger.Log.WithField("session", sessionID).Info("Session stopped")
}

// GetInstance возвращает инстанс сессии (для отладочных роутов)
func (s *Service) GetInstance(sessionID string) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Instances[sessionID]
}

// SessionCount возвращает число активных сессий
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Instances)
}

// DebugSnapshots собирает снимки всех активных сессий.
// Идентификаторы берутся под локом, состояние - через горутину
// каждого инстанса; остановленные по пути сессии молча пропускаются.
func (s *Service) DebugSnapshots() []DebugState {
	var out []DebugState
	for _, id := range s.SessionIDs() {
		inst := s.GetInstance(id)
		if inst == nil {
			continue
		}
		if st, ok := inst.RequestDebugState(); ok {
			out = append(out, st)
		}
	}
	return out
}

// SessionIDs возвращает снимок идентификаторов активных сессий
func (s *Service) SessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.Instances))
	for id := range s.Instances {
		ids = append(ids, id)
	}
	return ids
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token уже выставлен транспортом, здесь ему доверяем.
func (s *Service) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", externalCmd.Action).Debug("Unknown action")
		return
	}

	inst := s.GetInstance(externalCmd.Token)
	if inst == nil {
		return
	}

	inst.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

// flushReplay пишет ленту ввода инстанса на диск и начинает новую
func (s *Service) flushReplay(i *Instance) {
	if s.Replays == nil || i.Replay == nil || len(i.Replay.Frames) == 0 {
		return
	}
	if err := s.Replays.Save(i.Replay); err != nil {
		logger.Log.WithError(err).Warn("Failed to save replay")
		return
	}
	logger.Log.WithFields(map[string]interface{}{
		"session": i.SessionID,
		"scene":   i.Replay.Scene,
		"frames":  len(i.Replay.Frames),
	}).Info("💿 Replay saved")
}
