package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/avatarsync/assets"
	"github.com/automoto/avatarsync/config"
	"github.com/automoto/avatarsync/fonts"
	"github.com/automoto/avatarsync/network"
	"github.com/automoto/avatarsync/scenes"
	"github.com/automoto/avatarsync/settings"
	"github.com/automoto/avatarsync/shared/leveldata"
	"github.com/automoto/avatarsync/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(scene Scene) *Game {
	return &Game{scene: scene}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "YAML world file")
	server := flag.String("server", "", "connect to this server on start (host:port)")
	mode := flag.String("mode", "", "control mode (keyboardMouse, mobile)")
	name := flag.String("name", "player", "name shown to other players")
	level := flag.String("level", "", "level to load (overrides the world file)")
	flag.Parse()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	if err := fonts.LoadDefaults(config.UI.HUDFontSize, config.UI.StatusFontSize); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	// Saved settings first so the world file and flags win over them
	store, err := settings.Open("avatarsync")
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, _ := store.Load(); saved != nil {
		settings.Apply(saved)
		if saved.PlayerName != "" && !flagSet("name") {
			*name = saved.PlayerName
		}
	}

	fixedSpawn := false
	if *configPath != "" {
		wf, err := config.LoadWorldFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load world file %s: %v", *configPath, err)
		}
		if err := wf.Apply(); err != nil {
			log.Fatalf("Invalid world file %s: %v", *configPath, err)
		}
		_, fixedSpawn = wf.SpawnPoint()
	}

	if *mode != "" {
		if !config.ControlModeID(*mode).Valid() {
			log.Fatalf("Unknown control mode %q", *mode)
		}
		config.Controls.DefaultMode = config.ControlModeID(*mode)
	}
	if *server != "" {
		config.Net.ServerAddress = *server
	}
	if *level != "" {
		config.C.LevelPath = *level
	}

	lvl := loadLevel(config.C.LevelPath)

	client := network.NewClient(network.NewCorrectionStore())
	scene := scenes.NewWorldScene(client, scenes.WorldOptions{
		Level:       lvl,
		PlayerName:  *name,
		Settings:    store,
		FixedSpawn:  fixedSpawn,
		AutoConnect: *server != "",
	})

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(scene)); err != nil {
		log.Fatal(err)
	}
}

// loadLevel returns the named bundled level. An empty name uses the first
// level; nil means the bare base plane.
func loadLevel(name string) *leveldata.LevelData {
	levels, names, err := assets.LoadLevels()
	if err != nil {
		log.Printf("Warning: Could not load levels: %v", err)
		return nil
	}
	if name == "" {
		name = names[0]
	}
	lvl, ok := levels[name]
	if !ok {
		log.Printf("Warning: Unknown level %q, available: %v", name, names)
		return nil
	}
	log.Printf("Loaded level %s (%d grounds, %d walls)", lvl.Name, len(lvl.Grounds), len(lvl.Walls))
	return lvl
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
