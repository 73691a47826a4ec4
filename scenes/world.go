package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/automoto/avatarsync/avatar"
	"github.com/automoto/avatarsync/components"
	cfg "github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/controls"
	"github.com/automoto/avatarsync/input"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/physics"
	"github.com/automoto/avatarsync/render"
	"github.com/automoto/avatarsync/settings"
	"github.com/automoto/avatarsync/shared/leveldata"
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/automoto/avatarsync/shared/netcomponents"
	"github.com/automoto/avatarsync/systems"
	"github.com/automoto/avatarsync/systems/factory"
	"github.com/automoto/avatarsync/tags"
	"github.com/automoto/avatarsync/ui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	layerWorld ecs.LayerID = iota
	layerHUD
)

const (
	maxNotices     = 4
	noticeDuration = 4.0 // seconds
)

// WorldOptions configure a WorldScene.
type WorldOptions struct {
	Level      *leveldata.LevelData // nil for the bare base plane
	PlayerName string
	Settings   *settings.Manager
	// FixedSpawn keeps config.Player.Spawn instead of the level's spawn.
	FixedSpawn bool
	// AutoConnect dials the configured server on the first update.
	AutoConnect bool
}

// WorldScene runs the local player against an optional server.
type WorldScene struct {
	opts WorldOptions
	once sync.Once

	ecs        *ecs.ECS
	pipeline   []systems.System
	peerInterp systems.System
	player     *donburi.Entry

	hub      *controls.Hub
	switcher *controls.Switcher
	poller   *input.Poller
	physics  *physics.World
	avatar   *avatar.Controller
	client   *network.Client
	footer   *ui.Footer

	wasJoined  bool
	presentIDs map[esync.NetworkId]bool
}

func NewWorldScene(client *network.Client, opts WorldOptions) *WorldScene {
	return &WorldScene{
		opts:       opts,
		client:     client,
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

func (ws *WorldScene) Update() {
	ws.once.Do(ws.configure)

	ws.hub.SetViewport(float64(cfg.C.Width), float64(cfg.C.Height))
	ws.poller.Poll()
	ws.footer.Update()

	ws.updateConnection()
	if snap := ws.client.LatestSnapshot(); snap != nil {
		ws.applySnapshot(*snap)
	}

	ws.ecs.Update()
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.RGBA{R: 16, G: 16, B: 22, A: 255})

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)
	ws.footer.UI.Draw(screen)
}

func (ws *WorldScene) configure() {
	ws.ecs = ecs.NewECS(donburi.NewWorld())

	ws.hub = controls.NewHub()
	ws.switcher = controls.NewSwitcher(ws.hub, controls.NewCamera(cfg.Controls.MaxPitch), cfg.Controls)
	ws.poller = input.NewPoller(ws.hub)
	ws.avatar = avatar.NewController()

	spawn := cfg.Player.Spawn
	if ws.opts.Level == nil {
		ws.physics = physics.NewWorld(cfg.Physics)
	} else {
		ws.physics = physics.NewWorldFromLevel(cfg.Physics, ws.opts.Level)
		if sp, ok := ws.opts.Level.Spawn(); ok && !ws.opts.FixedSpawn {
			spawn = mgl64.Vec3{sp.X, sp.Y, sp.Z}
		}
	}
	ws.player = factory.CreateLocalPlayer(ws.ecs.World, ws.physics, ws.switcher, spawn)

	ws.buildFooter()

	ws.switcher.OnChange = func(mode cfg.ControlModeID) {
		ws.footer.SetMode(mode)
		if err := ws.opts.Settings.Update(func(s *settings.Saved) { s.ControlMode = string(mode) }); err != nil {
			log.Printf("[world] could not persist control mode: %v", err)
		}
	}
	if err := ws.switcher.SetMode(string(cfg.Controls.DefaultMode)); err != nil {
		log.Printf("[world] %v", err)
	}
	ws.footer.SetMode(ws.switcher.Mode())

	ws.pipeline = systems.LocalPlayerPipeline(systems.Deps{
		Channel:     ws.channel,
		Corrections: func() locomotion.Corrections { return ws.client.Corrections() },
		Avatar:      func() systems.AvatarSink { return ws.avatar },
	})
	ws.peerInterp = systems.NewPeerInterpSystem(ws.client.TickRate)

	ws.ecs.AddSystem(func(e *ecs.ECS) {
		dt := 1.0 / float64(ebiten.TPS())
		systems.RunTick(e.World, ws.pipeline, dt)
		ws.peerInterp(e.World, dt)
		systems.UpdateNotices(e.World, dt)
	})
	ws.ecs.AddRenderer(layerWorld, ws.drawWorld)
	ws.ecs.AddRenderer(layerHUD, ws.drawHUD)

	if ws.opts.AutoConnect {
		ws.connect(cfg.Net.ServerAddress)
	}
}

func (ws *WorldScene) buildFooter() {
	ws.footer = ui.NewFooter(cfg.Net.ServerAddress)
	ws.footer.OnConnect = ws.connect
	ws.footer.OnDisconnect = func() {
		log.Println("[world] disconnect requested")
		ws.client.Disconnect()
	}
	ws.footer.OnMode = func(mode cfg.ControlModeID) {
		if err := ws.switcher.SetMode(string(mode)); err != nil {
			log.Printf("[world] %v", err)
		}
	}
}

func (ws *WorldScene) connect(address string) {
	log.Printf("[world] connecting to %s", address)
	ws.client.Connect(address, cfg.Net.Version, ws.opts.PlayerName)
	ws.footer.SetStatus("connecting to " + address)
	ws.footer.SetConnected(true)

	if err := ws.opts.Settings.Update(func(s *settings.Saved) {
		s.ServerAddress = address
		s.PlayerName = ws.opts.PlayerName
	}); err != nil {
		log.Printf("[world] could not persist server address: %v", err)
	}
}

// channel returns the client only while it may emit.
func (ws *WorldScene) channel() systems.Emitter {
	if ws.client.State() != network.StateJoinedGame {
		return nil
	}
	return ws.client
}

func (ws *WorldScene) updateConnection() {
	state := ws.client.State()
	joined := state == network.StateJoinedGame

	switch {
	case joined && !ws.wasJoined:
		ws.onJoined()
	case !joined && ws.wasJoined:
		ws.removePeers()
	}
	ws.wasJoined = joined

	status := state.String()
	switch state {
	case network.StateJoinedGame:
		status = fmt.Sprintf("joined %s", ws.client.ServerName())
	case network.StateError:
		if err := ws.client.LastError(); err != nil {
			status = err.Error()
		}
	}
	ws.footer.SetStatus(status)
	ws.footer.SetConnected(state == network.StateConnecting || state == network.StateConnected || joined)

	for _, evt := range ws.client.DrainPeerJoined() {
		ws.notice(fmt.Sprintf("%s joined", evt.Name))
	}
	for _, evt := range ws.client.DrainPeerLeft() {
		ws.notice(fmt.Sprintf("%s left", evt.Name))
	}
}

// onJoined moves the player to the spawn the server assigned, so both sides
// recover to the same place.
func (ws *WorldScene) onJoined() {
	spawn, ok := ws.client.Spawn()
	if !ok {
		return
	}
	state := components.Player.Get(ws.player).State
	state.SpawnPoint = spawn
	state.Body.SetPosition(spawn)
	state.Body.SetVelocity(mgl64.Vec3{})
	state.HasLastPosition = false
	log.Printf("[world] joined, spawn %v", spawn)
}

func (ws *WorldScene) notice(msg string) {
	systems.PostNotice(ws.ecs.World, msg, noticeDuration, maxNotices)
}

// applySnapshot mirrors every remote avatar in the snapshot and removes the
// ones that are gone. The local player is corrected by the client instead.
func (ws *WorldScene) applySnapshot(snapshot esync.WorldSnapshot) {
	world := ws.ecs.World
	myNetID := ws.client.NetworkID()

	clear(ws.presentIDs)

	for _, ent := range snapshot {
		if ent.Id == myNetID {
			continue
		}
		ws.presentIDs[ent.Id] = true

		var transform *netcomponents.NetTransformData
		var av *netcomponents.NetAvatarData
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetTransformData:
				transform = &v
			case netcomponents.NetAvatarData:
				av = &v
			}
		}
		if transform == nil {
			continue
		}
		pos := mgl64.Vec3{transform.X, transform.Y, transform.Z}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			entity = factory.CreatePeer(world, ent.Id, pos).Entity()
		}
		entry := world.Entry(entity)

		netcomponents.NetTransform.SetValue(entry, *transform)
		if av != nil {
			netcomponents.NetAvatar.SetValue(entry, *av)
		}
		components.PeerInterp.Get(entry).Retarget(pos)
	}

	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ws.presentIDs[*id] {
			entry.Remove()
		}
	})
}

func (ws *WorldScene) removePeers() {
	var stale []*donburi.Entry
	tags.Peer.Each(ws.ecs.World, func(entry *donburi.Entry) {
		stale = append(stale, entry)
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

func (ws *WorldScene) view() render.View {
	return render.View{
		Focus:         components.Player.Get(ws.player).State.Position(),
		Width:         float64(cfg.C.Width),
		Height:        float64(cfg.C.Height),
		PixelsPerUnit: cfg.UI.PixelsPerUnit,
	}
}

func (ws *WorldScene) drawWorld(e *ecs.ECS, screen *ebiten.Image) {
	v := ws.view()
	render.DrawGrid(screen, v, cfg.UI.GridSpacing)
	render.DrawWorld(screen, v, ws.physics)

	tags.Peer.Each(e.World, func(entry *donburi.Entry) {
		p := components.PeerInterp.Get(entry)
		name, facing := "", 0.0
		if entry.HasComponent(netcomponents.NetAvatar) {
			av := netcomponents.NetAvatar.Get(entry)
			name, facing = av.Name, av.Facing
		}
		render.DrawGhost(screen, v, p.Current.X(), p.Current.Z(), facing, name)
	})

	if target, ok := ws.client.Corrections().ServerTransform(); ok && cfg.Log.Verbose {
		render.DrawGhost(screen, v, target.X(), target.Z(), 0, "server")
	}

	render.DrawAvatar(screen, v, ws.avatar.Snapshot())
}

func (ws *WorldScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	state := components.Player.Get(ws.player).State
	pos := state.Position()

	lines := []render.HUDLine{
		{Text: fmt.Sprintf("pos %.2f %.2f %.2f", pos.X(), pos.Y(), pos.Z())},
		{Text: fmt.Sprintf("anim %s  grounded %v", state.Animation.ID, state.Grounded())},
		{Text: fmt.Sprintf("mode %s", ws.switcher.Mode())},
	}
	if ws.client.State() == network.StateJoinedGame {
		lines = append(lines, render.HUDLine{
			Text:  fmt.Sprintf("pending %d  rtt %v", ws.client.Pending(), ws.client.RTT().Round(1e6)),
			Color: cfg.LightGreen,
		})
	}
	render.DrawHUD(screen, lines)
	render.DrawNotices(screen, systems.Notices(ws.ecs.World))

	if m, ok := ws.switcher.Active().(*controls.Mobile); ok {
		r := float32(cfg.Controls.JoystickRadius)
		stick := m.Stick()
		render.DrawJoystick(screen, r*1.5, float32(cfg.C.Height-cfg.UI.FooterHeight)-r*1.5, r, stick.X(), stick.Y())
	}
}
