package systems

import (
	"github.com/vdurham2244/lavobot-game/internal/domain"
)

// Фиксированные смещения камеры. Подобраны под фронтенд, не тюнятся.
var (
	thirdPersonOffset = domain.Vec3{X: 0, Y: 2, Z: 3}
	firstPersonOffset = domain.Vec3{X: 0, Y: 0.5, Z: 0.75}
	firstPersonLook   = domain.Vec3{X: 0, Y: 0.5, Z: -3}
)

// CameraPose - позиция камеры и точка, куда она смотрит.
// Клиентский orbit-контроллер синхронизирует по ней свой target.
type CameraPose struct {
	Pos    domain.Vec3 `json:"pos"`
	LookAt domain.Vec3 `json:"lookAt"`
}

// FollowCamera пересчитывает камеру каждый кадр ПОСЛЕ коммита позиции
// аватара. Два фиксированных режима, третьего не дано.
func FollowCamera(avatar domain.Vec3, firstPerson bool) CameraPose {
	if firstPerson {
		return CameraPose{
			Pos:    avatar.Add(firstPersonOffset),
			LookAt: avatar.Add(firstPersonLook),
		}
	}
	return CameraPose{
		Pos:    avatar.Add(thirdPersonOffset),
		LookAt: avatar, // третье лицо смотрит точно на аватар
	}
}
