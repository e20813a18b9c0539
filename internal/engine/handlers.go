package engine

import (
	"encoding/json"
	"fmt"

	"github.com/vdurham2244/lavobot-game/pkg/api"
)

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи инстанса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ERROR)
}

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// HandlerFunc - это контракт для любой команды (INIT, INPUT, SWITCH_SCENE).
type HandlerFunc func(i *Instance, payload json.RawMessage) (Result, error)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(i *Instance, payload T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (INIT)
type EmptyHandlerFunc func(i *Instance) (Result, error)

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(i *Instance, raw json.RawMessage) (Result, error) {
		var payload T

		// 1. Распаковка JSON
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Result{}, fmt.Errorf("invalid payload format: %w", err)
		}

		// 2. Автоматическая валидация
		// Проверяем, реализует ли структура T интерфейс Validator
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return Result{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		// 3. Вызов чистой логики
		return handler(i, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных (INIT)
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(i *Instance, _ json.RawMessage) (Result, error) {
		// Входящий JSON игнорируем, он логике не нужен.
		return handler(i)
	}
}
