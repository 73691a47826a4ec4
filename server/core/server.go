package core

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/physics"
	"github.com/automoto/avatarsync/shared/leveldata"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/automoto/avatarsync/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

var (
	ErrVersionMismatch = errors.New("version mismatch")
	ErrNameTooLong     = errors.New("name too long")
	ErrServerFull      = errors.New("server full")
	ErrAlreadyJoined   = errors.New("already joined")
)

// Options configure a Server.
type Options struct {
	Name     string
	Version  string // empty accepts any client version
	TickRate int
	Level    *leveldata.LevelData // nil for the bare base plane
}

// Server manages the world state and client sessions
type Server struct {
	world     donburi.World
	physics   *physics.World
	level     *leveldata.LevelData
	loop      *GameLoop
	transport *transports.WsServerTransport

	name    string
	version string

	// Track which peer owns which session
	sessions map[Peer]*Session
	joins    int
	mu       sync.RWMutex
}

// NewServer creates a new world server
func NewServer(opts Options) *Server {
	if opts.TickRate <= 0 {
		opts.TickRate = netconfig.DefaultTickRate
	}

	world := donburi.NewWorld()

	s := &Server{
		world:    world,
		physics:  newPhysicsWorld(opts.Level),
		level:    opts.Level,
		name:     opts.Name,
		version:  opts.Version,
		sessions: make(map[Peer]*Session),
	}
	s.loop = NewGameLoop(s, opts.TickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	return s
}

// Start registers the router callbacks and serves on port until the
// transport fails.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()

	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		s.Leave(client)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, msg messages.Keys) {
		s.OnKeys(client, msg)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(peer Peer, req messages.JoinRequest) {
	accepted, err := s.Join(peer, req)
	if err != nil {
		log.Printf("[server] rejected %s: %v", peer.Id(), err)
		if sendErr := peer.SendMessage(messages.JoinRejected{Reason: err.Error()}); sendErr != nil {
			log.Printf("[server] could not send rejection to %s: %v", peer.Id(), sendErr)
		}
		return
	}
	if err := peer.SendMessage(accepted); err != nil {
		log.Printf("[server] could not send join accept to %s: %v", peer.Id(), err)
	}
}

// validateJoin checks a request against the server's limits. players is the
// current session count.
func (s *Server) validateJoin(req messages.JoinRequest, players int) error {
	if s.version != "" && req.Version != s.version {
		return fmt.Errorf("client %q, server %q: %w", req.Version, s.version, ErrVersionMismatch)
	}
	if len(req.PlayerName) > netconfig.MaxNameLength {
		return fmt.Errorf("%d characters, max %d: %w", len(req.PlayerName), netconfig.MaxNameLength, ErrNameTooLong)
	}
	if players >= netconfig.MaxPlayers {
		return fmt.Errorf("%d players: %w", players, ErrServerFull)
	}
	return nil
}

// Join creates a session and its synced entity for peer, then tells the
// other sessions about it.
func (s *Server) Join(peer Peer, req messages.JoinRequest) (messages.JoinAccepted, error) {
	s.mu.Lock()

	if _, ok := s.sessions[peer]; ok {
		s.mu.Unlock()
		return messages.JoinAccepted{}, fmt.Errorf("join %s: %w", peer.Id(), ErrAlreadyJoined)
	}
	if err := s.validateJoin(req, len(s.sessions)); err != nil {
		s.mu.Unlock()
		return messages.JoinAccepted{}, fmt.Errorf("join %s: %w", peer.Id(), err)
	}

	spawn := s.nextSpawn()
	sess := newSession(peer, req.PlayerName, s.physics, spawn)

	entity := s.world.Create(netcomponents.NetTransform, netcomponents.NetAvatar)
	sess.Entity = entity
	sess.Write(s.world.Entry(entity))

	// Mark entity for network sync with interpolation for the transform
	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetTransform),
		netcomponents.NetAvatar,
	); err != nil {
		s.world.Remove(entity)
		s.physics.RemoveCapsule(sess.Capsule)
		s.mu.Unlock()
		return messages.JoinAccepted{}, fmt.Errorf("network sync: %w", err)
	}

	var netID esync.NetworkId
	if id := esync.GetNetworkId(s.world.Entry(entity)); id != nil {
		netID = *id
	}

	s.sessions[peer] = sess
	s.joins++
	others := s.peersExcept(peer)
	s.mu.Unlock()

	log.Printf("[server] %s joined as %q (networkID=%d, spawn=%v)", peer.Id(), req.PlayerName, netID, spawn)
	s.broadcast(others, messages.PeerJoined{NetworkID: netID, Name: req.PlayerName})

	return messages.JoinAccepted{
		NetworkID:  netID,
		ServerName: s.name,
		TickRate:   s.loop.Rate(),
		Spawn:      spawn,
	}, nil
}

// Leave removes peer's session and entity. Unknown peers are ignored.
func (s *Server) Leave(peer Peer) {
	s.mu.Lock()
	sess, ok := s.sessions[peer]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, peer)

	var netID esync.NetworkId
	if s.world.Valid(sess.Entity) {
		if id := esync.GetNetworkId(s.world.Entry(sess.Entity)); id != nil {
			netID = *id
		}
		s.world.Remove(sess.Entity)
	}
	s.physics.RemoveCapsule(sess.Capsule)
	others := s.peersExcept(peer)
	s.mu.Unlock()

	log.Printf("[server] %q left", sess.Name)
	s.broadcast(others, messages.PeerLeft{NetworkID: netID, Name: sess.Name})
}

// OnKeys stores msg for the next tick. Stale sequences are dropped.
func (s *Server) OnKeys(peer Peer, msg messages.Keys) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[peer]
	if !ok {
		return
	}
	if !sess.Accept(msg) && config.Log.Verbose {
		log.Printf("[server] dropped stale keys %d from %q", msg.Sequence, sess.Name)
	}
}

// Tick advances every session by delta and writes the synced components.
func (s *Server) Tick(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if !s.world.Valid(sess.Entity) {
			continue
		}
		if sess.Step(delta) {
			log.Printf("[server] %q fell below the floor, returned to spawn", sess.Name)
		}
		sess.Write(s.world.Entry(sess.Entity))
	}
}

// nextSpawn cycles through the level's spawn points. Callers hold mu.
func (s *Server) nextSpawn() [3]float64 {
	if s.level == nil || len(s.level.SpawnPoints) == 0 {
		p := config.Player.Spawn
		return [3]float64{p.X(), p.Y(), p.Z()}
	}
	sp := s.level.SpawnPoints[s.joins%len(s.level.SpawnPoints)]
	return [3]float64{sp.X, sp.Y, sp.Z}
}

// peersExcept lists every session peer but skip. Callers hold mu.
func (s *Server) peersExcept(skip Peer) []Peer {
	peers := make([]Peer, 0, len(s.sessions))
	for p := range s.sessions {
		if p != skip {
			peers = append(peers, p)
		}
	}
	return peers
}

func (s *Server) broadcast(peers []Peer, msg any) {
	for _, p := range peers {
		if err := p.SendMessage(msg); err != nil {
			log.Printf("[server] broadcast to %s failed: %v", p.Id(), err)
		}
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Session returns peer's session, if joined.
func (s *Server) Session(peer Peer) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[peer]
	return sess, ok
}

// PlayerCount returns the number of joined players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
