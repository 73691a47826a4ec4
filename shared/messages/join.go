package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request joining the world.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ServerName string
	TickRate   int
	Spawn      [3]float64
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}

// PeerJoined is broadcast when another player enters the world.
type PeerJoined struct {
	NetworkID esync.NetworkId
	Name      string
}

// PeerLeft is broadcast when a player leaves the world.
type PeerLeft struct {
	NetworkID esync.NetworkId
	Name      string
}
