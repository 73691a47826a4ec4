package core

import (
	"log"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// GameLoop steps the simulation at a fixed rate and pushes the synced
// components to clients after every step. Each step advances by exactly one
// tick period, whatever the ticker's jitter.
type GameLoop struct {
	rate     int
	interval time.Duration
	dt       float64

	step func(dt float64)
	sync func() error

	done     chan struct{}
	stopOnce sync.Once
}

// NewGameLoop returns a loop that ticks server at rate ticks per second.
func NewGameLoop(server *Server, rate int) *GameLoop {
	return newLoop(rate, server.Tick, srvsync.DoSync)
}

func newLoop(rate int, step func(float64), push func() error) *GameLoop {
	return &GameLoop{
		rate:     rate,
		interval: time.Second / time.Duration(rate),
		dt:       1 / float64(rate),
		step:     step,
		sync:     push,
		done:     make(chan struct{}),
	}
}

// Rate returns the configured ticks per second.
func (g *GameLoop) Rate() int { return g.rate }

// Run blocks until Stop.
func (g *GameLoop) Run() {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	log.Printf("[loop] stepping every %v (%d/s)", g.interval, g.rate)

	for {
		select {
		case <-g.done:
			log.Println("[loop] stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends Run. Calling it again is a no-op.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.done) })
}

func (g *GameLoop) tick() {
	g.step(g.dt)
	if err := g.sync(); err != nil {
		log.Printf("[loop] sync error: %v", err)
	}
}
