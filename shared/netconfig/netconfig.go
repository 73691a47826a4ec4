// Package netconfig defines lightweight values shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// MessageKeys is the message type of the per-tick intent message.
const MessageKeys = "keys"

const (
	DefaultPort     uint = 7373
	DefaultTickRate      = 20
	MaxPlayers           = 16
	MaxNameLength        = 24
)

var knownMessages = map[string]struct{}{
	MessageKeys: {},
}

// IsKnownMessage reports whether messageType may be emitted by a client.
func IsKnownMessage(messageType string) bool {
	_, ok := knownMessages[messageType]
	return ok
}
