package api

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/command.schema.json
var commandSchemaSrc string

// commandSchema компилируется один раз при загрузке пакета.
// Ошибка в схеме - это ошибка сборки, паника здесь уместна.
var commandSchema = jsonschema.MustCompileString("command.schema.json", commandSchemaSrc)

// ValidateCommandJSON проверяет сырое сообщение клиента по JSON-схеме
// ДО десериализации в ClientCommand. Отсекает мусор и лишние поля
// на самом входе, типизированные Validate() добирают остальное.
func ValidateCommandJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	if err := commandSchema.Validate(v); err != nil {
		return fmt.Errorf("command schema: %w", err)
	}
	return nil
}
