package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/automoto/avatarsync/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrNotConnected       = errors.New("not connected")
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ClientState(%d)", int(s))
}

// Client manages a WebSocket connection to the world server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	gen        uint64 // bumped by Connect and Disconnect
	serverName string
	tickRate   int
	spawn      mgl64.Vec3
	hasSpawn   bool
	conn       *websocket.Conn

	corrections *CorrectionStore
	sent        SentLog

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
	joinedCh   chan messages.PeerJoined
	leftCh     chan messages.PeerLeft
}

// NewClient creates a client writing the local player's authoritative
// position into store.
func NewClient(store *CorrectionStore) *Client {
	if store == nil {
		store = NewCorrectionStore()
	}
	return &Client{
		state:       StateDisconnected,
		corrections: store,
		snapshotCh:  make(chan esync.WorldSnapshot, 1),
		joinedCh:    make(chan messages.PeerJoined, 8),
		leftCh:      make(chan messages.PeerLeft, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the join
// handshake. Any earlier connection is dropped and its callbacks are ignored.
func (c *Client) Connect(address, version, playerName string) {
	a := c.begin(version, playerName)

	// The router keeps package level handler lists
	router.ResetRouter()

	router.OnConnect(func(_ *router.NetworkClient) { a.connected() })
	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) { a.joinAccepted(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) { a.joinRejected(msg) })
	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) { a.snapshot(snapshot) })
	router.On(func(_ *router.NetworkClient, evt messages.PeerJoined) { a.peerJoined(evt) })
	router.On(func(_ *router.NetworkClient, evt messages.PeerLeft) { a.peerLeft(evt) })
	router.OnDisconnect(func(_ *router.NetworkClient, err error) { a.disconnected(err) })
	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		if err := transport.Start(a.attach); err != nil {
			a.fail(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// attempt is one Connect call. Its handlers do nothing once a later Connect
// or Disconnect has moved the client on.
type attempt struct {
	c          *Client
	gen        uint64
	version    string
	playerName string
}

// begin starts a new attempt and resets everything the previous one set.
func (c *Client) begin(version, playerName string) *attempt {
	c.mu.Lock()
	c.gen++
	old := c.conn
	c.conn = nil
	c.state = StateConnecting
	c.lastError = nil
	c.networkID = 0
	c.serverName = ""
	c.tickRate = 0
	c.hasSpawn = false
	a := &attempt{c: c, gen: c.gen, version: version, playerName: playerName}
	c.mu.Unlock()

	c.corrections.Clear()
	c.sent.Reset()
	drainChan(c.snapshotCh)
	drainChan(c.joinedCh)
	drainChan(c.leftCh)

	if old != nil {
		_ = old.CloseNow()
	}
	return a
}

// current reports whether a is the latest attempt. mu must be held.
func (a *attempt) current() bool {
	return a.c.gen == a.gen
}

func (a *attempt) live() bool {
	a.c.mu.RLock()
	defer a.c.mu.RUnlock()
	return a.current()
}

func (a *attempt) attach(conn *websocket.Conn) {
	c := a.c
	c.mu.Lock()
	if !a.current() {
		c.mu.Unlock()
		_ = conn.CloseNow()
		return
	}
	c.conn = conn
	c.mu.Unlock()
}

func (a *attempt) connected() {
	c := a.c
	c.mu.Lock()
	if !a.current() {
		c.mu.Unlock()
		return
	}
	c.state = StateConnected
	conn := c.conn
	c.mu.Unlock()

	log.Println("[client] connected to server")

	payload, err := router.Serialize(messages.JoinRequest{
		Version:    a.version,
		PlayerName: a.playerName,
	})
	if err != nil {
		a.fail(fmt.Errorf("failed to serialize join request: %w", err))
		return
	}
	if conn != nil {
		if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
			a.fail(fmt.Errorf("failed to send join request: %w", err))
		}
	}
}

func (a *attempt) joinAccepted(msg messages.JoinAccepted) {
	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if !a.current() {
		return
	}
	log.Printf("[client] join accepted: networkID=%d server=%s tickRate=%d",
		msg.NetworkID, msg.ServerName, msg.TickRate)
	c.networkID = msg.NetworkID
	c.serverName = msg.ServerName
	c.tickRate = msg.TickRate
	c.spawn = mgl64.Vec3{msg.Spawn[0], msg.Spawn[1], msg.Spawn[2]}
	c.hasSpawn = true
	c.state = StateJoinedGame
}

func (a *attempt) joinRejected(msg messages.JoinRejected) {
	if !a.live() {
		return
	}
	log.Printf("[client] join rejected: %s", msg.Reason)
	a.fail(fmt.Errorf("join rejected: %s", msg.Reason))
}

func (a *attempt) snapshot(snapshot esync.WorldSnapshot) {
	if !a.live() {
		return
	}
	a.c.handleSnapshot(snapshot)

	select { // drain stale, push latest
	case <-a.c.snapshotCh:
	default:
	}
	select {
	case a.c.snapshotCh <- snapshot:
	default:
	}
}

func (a *attempt) peerJoined(evt messages.PeerJoined) {
	if !a.live() {
		return
	}
	select {
	case a.c.joinedCh <- evt:
	default:
	}
}

func (a *attempt) peerLeft(evt messages.PeerLeft) {
	if !a.live() {
		return
	}
	select {
	case a.c.leftCh <- evt:
	default:
	}
}

func (a *attempt) disconnected(err error) {
	c := a.c
	c.mu.Lock()
	if !a.current() {
		c.mu.Unlock()
		return
	}
	if c.state != StateError {
		c.state = StateDisconnected
	}
	c.conn = nil
	c.networkID = 0
	c.mu.Unlock()

	log.Printf("[client] disconnected: %v", err)
	c.corrections.Clear()
}

// fail moves the client to StateError unless a later attempt has taken over.
// The network id goes with it, so later snapshots are not read as the local
// player.
func (a *attempt) fail(err error) {
	c := a.c
	c.mu.Lock()
	if !a.current() {
		c.mu.Unlock()
		return
	}
	c.state = StateError
	c.lastError = err
	c.networkID = 0
	c.mu.Unlock()
	c.corrections.Clear()
}

// handleSnapshot extracts the local player's authoritative state. It runs on
// the receive goroutine.
func (c *Client) handleSnapshot(snapshot esync.WorldSnapshot) {
	c.mu.RLock()
	myID, state := c.networkID, c.state
	c.mu.RUnlock()
	if myID == 0 || state != StateJoinedGame {
		return
	}

	for _, ent := range snapshot {
		if ent.Id != myID {
			continue
		}
		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}
		c.applyOwnState(compData, time.Now())
		return
	}

	c.corrections.Clear()
}

// applyOwnState stores the transform and acknowledges the last processed
// sequence. Without a transform the correction is cleared.
func (c *Client) applyOwnState(compData []any, now time.Time) {
	found := false
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetTransformData:
			c.corrections.Set(mgl64.Vec3{v.X, v.Y, v.Z})
			found = true
		case netcomponents.NetAvatarData:
			c.sent.Ack(v.LastSequence, now)
		}
	}
	if !found {
		c.corrections.Clear()
	}
}

// Disconnect closes the connection and drops the held correction.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.gen++
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.networkID = 0
	c.mu.Unlock()

	c.corrections.Clear()
	c.sent.Reset()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Spawn returns the spawn point the server assigned, once joined.
func (c *Client) Spawn() (mgl64.Vec3, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spawn, c.hasSpawn
}

// Corrections returns the store the client writes authoritative positions to.
func (c *Client) Corrections() *CorrectionStore {
	return c.corrections
}

// Pending returns how many emitted keys messages the server has not processed yet.
func (c *Client) Pending() int {
	return c.sent.Pending()
}

// RTT returns the round trip of the latest acknowledged keys message.
func (c *Client) RTT() time.Duration {
	return c.sent.RTT()
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// Emit sends payload as messageType. Only joined clients may emit.
func (c *Client) Emit(messageType string, payload any) error {
	if !netconfig.IsKnownMessage(messageType) {
		return fmt.Errorf("emit %q: %w", messageType, ErrUnknownMessageType)
	}
	if c.State() != StateJoinedGame {
		return fmt.Errorf("emit %q: %w", messageType, ErrNotConnected)
	}
	if err := c.SendMessage(payload); err != nil {
		return fmt.Errorf("emit %q: %w", messageType, err)
	}
	if keys, ok := payload.(messages.Keys); ok {
		c.sent.Store(keys.Sequence, time.Now())
	}
	return nil
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// DrainPeerJoined returns all pending join notices, non-blocking.
func (c *Client) DrainPeerJoined() []messages.PeerJoined {
	return drainChan(c.joinedCh)
}

// DrainPeerLeft returns all pending leave notices, non-blocking.
func (c *Client) DrainPeerLeft() []messages.PeerLeft {
	return drainChan(c.leftCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
