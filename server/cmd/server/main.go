package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/avatarsync/assets"
	"github.com/automoto/avatarsync/server/core"
	"github.com/automoto/avatarsync/shared/leveldata"
	"github.com/automoto/avatarsync/shared/netconfig"
	"github.com/automoto/avatarsync/shared/protocol"
)

func main() {
	port := flag.Uint("port", netconfig.DefaultPort, "Server port")
	tickRate := flag.Int("tickrate", netconfig.DefaultTickRate, "Server tick rate (updates per second)")
	name := flag.String("name", "avatarsync", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	levelsDir := flag.String("levels", "", "Directory holding levels/*.tmx (empty = bundled levels)")
	level := flag.String("level", "", "Level to load (empty = first level)")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	var lvl *leveldata.LevelData
	var err error
	if *levelsDir != "" {
		lvl, err = core.LoadLevelDir(*levelsDir, *level)
	} else {
		lvl, err = core.LoadLevel(assets.Levels(), assets.LevelsDir, *level)
	}
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	server := core.NewServer(core.Options{
		Name:     *name,
		Version:  *version,
		TickRate: *tickRate,
		Level:    lvl,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting avatarsync server %q on port %d (tick rate: %d/s, version: %q, level: %s)",
		*name, *port, *tickRate, *version, lvl.Name)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
