package main

import (
	"context"
	"log"
	"os"

	"github.com/getlantern/systray"

	"github.com/thibautnext/x-growth-extension/internal/app"
	"github.com/thibautnext/x-growth-extension/internal/config"
	"github.com/thibautnext/x-growth-extension/internal/store"
	"github.com/thibautnext/x-growth-extension/internal/tray"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load or create configuration
	cfg, err := config.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// First run - create default config
			cfg = config.Default()
			if err := cfg.Save(); err != nil {
				log.Printf("Warning: could not save default config: %v", err)
			} else {
				path, _ := config.ConfigPath()
				log.Printf("Created default config at: %s", path)
			}
		} else {
			log.Printf("Warning: could not load config: %v (using defaults)", err)
			cfg = config.Default()
		}
	}

	// Open the key/value store
	dbPath, err := config.DataPath()
	if err != nil {
		log.Fatalf("Failed to get data path: %v", err)
	}
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Create the app
	a, err := app.New(cfg, st)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Println("x-growth starting...")

	if err := a.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start annotation session: %v", err)
	}

	// Run systray (blocks until Quit)
	systray.Run(tray.OnReady(a), tray.OnExit(a))
}
