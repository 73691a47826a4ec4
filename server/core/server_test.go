package core

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/shared/leveldata"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/shared/messages"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/automoto/avatarsync/shared/netconfig"
	"github.com/automoto/avatarsync/shared/protocol"
)

type fakePeer struct {
	id   string
	sent []any
}

func (p *fakePeer) Id() string { return p.id }

func (p *fakePeer) SendMessage(msg any) error {
	p.sent = append(p.sent, msg)
	return nil
}

func TestMain(m *testing.M) {
	if err := protocol.RegisterComponents(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, lvl *leveldata.LevelData) *Server {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)
	return NewServer(Options{Name: "test", Version: "1.0", TickRate: 20, Level: lvl})
}

func forwardKeys(seq uint32) messages.Keys {
	msg := messages.NewKeys(seq)
	msg.Keys[string(locomotion.ActionForward)] = true
	msg.ControlObject.Direction = [3]float64{0, 0, -1}
	return msg
}

func TestValidateJoin(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		req     messages.JoinRequest
		players int
		want    error
	}{
		{name: "ok", req: messages.JoinRequest{Version: "1.0", PlayerName: "ada"}},
		{name: "version mismatch", req: messages.JoinRequest{Version: "0.9", PlayerName: "ada"}, want: ErrVersionMismatch},
		{
			name: "name too long",
			req:  messages.JoinRequest{Version: "1.0", PlayerName: strings.Repeat("x", netconfig.MaxNameLength+1)},
			want: ErrNameTooLong,
		},
		{
			name:    "full",
			req:     messages.JoinRequest{Version: "1.0", PlayerName: "ada"},
			players: netconfig.MaxPlayers,
			want:    ErrServerFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.validateJoin(tt.req, tt.players)
			if tt.want == nil {
				if err != nil {
					t.Errorf("validateJoin() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("validateJoin() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestJoinRejectionIsSent(t *testing.T) {
	s := newTestServer(t, nil)
	peer := &fakePeer{id: "a"}

	s.onJoinRequest(peer, messages.JoinRequest{Version: "2.0", PlayerName: "ada"})

	if len(peer.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(peer.sent))
	}
	if _, ok := peer.sent[0].(messages.JoinRejected); !ok {
		t.Errorf("sent %T, want JoinRejected", peer.sent[0])
	}
	if s.PlayerCount() != 0 {
		t.Errorf("PlayerCount() = %d, want 0", s.PlayerCount())
	}
}

func TestJoinUsesLevelSpawnAndAnnounces(t *testing.T) {
	lvl := &leveldata.LevelData{
		Name: "test",
		SpawnPoints: []leveldata.SpawnPoint{
			{X: 4, Y: 0, Z: 4},
			{X: 8, Y: 0, Z: 8, Index: 1},
		},
	}
	s := newTestServer(t, lvl)
	a, b := &fakePeer{id: "a"}, &fakePeer{id: "b"}

	accA, err := s.Join(a, messages.JoinRequest{Version: "1.0", PlayerName: "ada"})
	if err != nil {
		t.Fatalf("Join(a) error = %v", err)
	}
	accB, err := s.Join(b, messages.JoinRequest{Version: "1.0", PlayerName: "bob"})
	if err != nil {
		t.Fatalf("Join(b) error = %v", err)
	}

	if accA.Spawn != [3]float64{4, 0, 4} || accB.Spawn != [3]float64{8, 0, 8} {
		t.Errorf("spawns = %v, %v; want cycling level spawns", accA.Spawn, accB.Spawn)
	}
	if accA.NetworkID == accB.NetworkID {
		t.Errorf("both sessions got network id %d", accA.NetworkID)
	}
	if accA.TickRate != 20 || accA.ServerName != "test" {
		t.Errorf("accept = %+v", accA)
	}

	if len(a.sent) != 1 {
		t.Fatalf("a received %d messages, want 1", len(a.sent))
	}
	joined, ok := a.sent[0].(messages.PeerJoined)
	if !ok || joined.Name != "bob" || joined.NetworkID != accB.NetworkID {
		t.Errorf("a received %+v, want PeerJoined for bob", a.sent[0])
	}
	if len(b.sent) != 0 {
		t.Errorf("b received %d messages, want none", len(b.sent))
	}

	if _, err := s.Join(a, messages.JoinRequest{Version: "1.0", PlayerName: "ada"}); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("second Join(a) error = %v, want ErrAlreadyJoined", err)
	}
}

func TestSessionKeepsNewestKeys(t *testing.T) {
	var sess Session

	steps := []struct {
		seq  uint32
		want bool
	}{
		{seq: 2, want: true},
		{seq: 1, want: false},
		{seq: 2, want: false},
		{seq: 5, want: true},
	}
	for _, st := range steps {
		if got := sess.Accept(messages.NewKeys(st.seq)); got != st.want {
			t.Errorf("Accept(%d) = %v, want %v", st.seq, got, st.want)
		}
	}
	if sess.keys.Sequence != 5 {
		t.Errorf("held sequence = %d, want 5", sess.keys.Sequence)
	}
}

func TestTickKeepsJumpFromReplacedKeys(t *testing.T) {
	s := newTestServer(t, nil)
	peer := &fakePeer{id: "a"}
	if _, err := s.Join(peer, messages.JoinRequest{Version: "1.0", PlayerName: "ada"}); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	sess, _ := s.Session(peer)
	s.Tick(1.0 / 20)
	if !sess.State.Grounded() {
		t.Fatal("session not grounded after settling")
	}

	// Jump tapped and released between two ticks
	jump := messages.NewKeys(1)
	jump.Keys[string(locomotion.ActionJump)] = true
	s.OnKeys(peer, jump)
	s.OnKeys(peer, messages.NewKeys(2))
	s.OnKeys(peer, messages.NewKeys(3))
	s.Tick(1.0 / 20)

	if vy := sess.State.Body.Velocity().Y(); vy <= 0 {
		t.Errorf("velocity.y = %f, want rising after a tapped jump", vy)
	}
	if sess.State.Animation.ID != locomotion.AnimJump {
		t.Errorf("Animation = %q, want jump", sess.State.Animation.ID)
	}
	if sess.processed != 3 {
		t.Errorf("processed = %d, want 3", sess.processed)
	}
	if sess.jumpPending {
		t.Error("jump still pending after the tick that used it")
	}

	// A jump the loop already integrated is not replayed
	replay := messages.NewKeys(1)
	replay.Keys[string(locomotion.ActionJump)] = true
	s.OnKeys(peer, replay)
	if sess.jumpPending {
		t.Error("jump from an integrated sequence latched again")
	}
}

func TestTickMovesSessionAndAcks(t *testing.T) {
	s := newTestServer(t, nil)
	peer := &fakePeer{id: "a"}
	if _, err := s.Join(peer, messages.JoinRequest{Version: "1.0", PlayerName: "ada"}); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	for seq := uint32(1); seq <= 10; seq++ {
		s.OnKeys(peer, forwardKeys(seq))
		s.Tick(1.0 / 20)
	}
	s.OnKeys(peer, forwardKeys(3))

	sess, ok := s.Session(peer)
	if !ok {
		t.Fatal("session missing")
	}
	entry := s.World().Entry(sess.Entity)
	tr := netcomponents.NetTransform.Get(entry)
	av := netcomponents.NetAvatar.Get(entry)

	if tr.Z >= 0 {
		t.Errorf("z = %f, want negative after walking forward", tr.Z)
	}
	if tr.X != 0 {
		t.Errorf("x = %f, want 0", tr.X)
	}
	if av.LastSequence != 10 {
		t.Errorf("LastSequence = %d, want 10", av.LastSequence)
	}
	if av.Animation != string(locomotion.AnimWalk) {
		t.Errorf("Animation = %q, want walk", av.Animation)
	}
	if av.Name != "ada" {
		t.Errorf("Name = %q, want ada", av.Name)
	}
}

func TestTickRecoversFallenSession(t *testing.T) {
	s := newTestServer(t, nil)
	peer := &fakePeer{id: "a"}
	if _, err := s.Join(peer, messages.JoinRequest{Version: "1.0", PlayerName: "ada"}); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	sess, _ := s.Session(peer)
	sess.State.Body.SetPosition(sess.State.SpawnPoint.Add(locomotion.Up.Mul(-50)))

	s.Tick(1.0 / 20)

	if got := sess.State.Position(); got != sess.State.SpawnPoint {
		t.Errorf("position = %v, want spawn %v", got, sess.State.SpawnPoint)
	}
}

func TestLeaveRemovesSession(t *testing.T) {
	s := newTestServer(t, nil)
	a, b := &fakePeer{id: "a"}, &fakePeer{id: "b"}
	if _, err := s.Join(a, messages.JoinRequest{Version: "1.0", PlayerName: "ada"}); err != nil {
		t.Fatal(err)
	}
	accB, err := s.Join(b, messages.JoinRequest{Version: "1.0", PlayerName: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	sessB, _ := s.Session(b)
	a.sent = nil

	s.Leave(b)
	s.Leave(b)

	if s.PlayerCount() != 1 {
		t.Errorf("PlayerCount() = %d, want 1", s.PlayerCount())
	}
	if s.World().Valid(sessB.Entity) {
		t.Error("entity still valid after Leave")
	}
	if s.physics.CapsuleCount() != 1 {
		t.Errorf("CapsuleCount() = %d, want 1", s.physics.CapsuleCount())
	}
	if len(a.sent) != 1 {
		t.Fatalf("a received %d messages, want 1", len(a.sent))
	}
	left, ok := a.sent[0].(messages.PeerLeft)
	if !ok || left.NetworkID != accB.NetworkID || left.Name != "bob" {
		t.Errorf("a received %+v, want PeerLeft for bob", a.sent[0])
	}
}
