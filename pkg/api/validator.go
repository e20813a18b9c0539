package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InputPayload) Validate() error {
	if p.Ix < -1 || p.Ix > 1 || p.Iz < -1 || p.Iz > 1 {
		return errors.New("intent component out of range")
	}
	return nil
}

func (p ScenePayload) Validate() error {
	if p.Scene == "" {
		return errors.New("scene is required")
	}
	return nil
}
