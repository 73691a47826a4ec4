package netcomponents

import "github.com/yohamta/donburi"

type NetAvatarData struct {
	Name         string
	Animation    string
	Facing       float64 // yaw in radians
	LastSequence uint32  // Last keys sequence processed by the server
}

var NetAvatar = donburi.NewComponentType[NetAvatarData]()
