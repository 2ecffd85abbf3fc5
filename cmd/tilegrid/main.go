package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/milk9111/tilegrid/config"
	"github.com/milk9111/tilegrid/editor"
	"github.com/milk9111/tilegrid/script"
	"github.com/milk9111/tilegrid/tilemap"
	"github.com/milk9111/tilegrid/tiles"
	"golang.design/x/clipboard"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file")
	catalogDir := flag.String("catalog", "", "Directory with a tiles.yaml overriding the built-in catalog")
	watch := flag.Bool("watch", false, "Reload the catalog when tiles.yaml changes")
	scriptName := flag.String("script", "", "Tengo script to run before reading commands (path or built-in name)")
	importCode := flag.String("import", "", "Map code to load at startup")
	useClipboard := flag.Bool("clipboard", false, "Copy exports to and paste imports from the system clipboard")
	batch := flag.Bool("batch", false, "Exit after -import/-script and print the map code")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *catalogDir != "" {
		cfg.Catalog.Dir = *catalogDir
	}
	if *watch {
		cfg.Catalog.Watch = true
	}
	if *useClipboard {
		cfg.Clipboard = true
	}

	catalog, err := tiles.Load(cfg.Catalog.Dir)
	if err != nil {
		log.Fatalf("Failed to load tile catalog: %v", err)
	}
	log.Printf("Loaded %d tile types", len(catalog.Names()))

	if cfg.Catalog.Watch {
		if cfg.Catalog.Dir == "" {
			log.Printf("Catalog watch requested without a catalog dir; ignoring")
		} else {
			w, err := tiles.NewWatcher(cfg.Catalog.Dir)
			if err != nil {
				log.Printf("Failed to watch catalog: %v", err)
			} else {
				defer w.Close()
				go catalog.Watch(w)
			}
		}
	}

	grid, err := tilemap.New(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.TileSize, catalog)
	if err != nil {
		log.Fatalf("Failed to create grid: %v", err)
	}
	minX, minY, maxX, maxY := grid.Bounds()
	log.Printf("Grid %dx%d, logical range x[%d,%d] y[%d,%d]", grid.Width(), grid.Height(), minX, maxX, minY, maxY)

	session := editor.NewSession(grid, catalog)
	session.OnModeChanged(func(m editor.Mode) {
		log.Printf("Mode: %s", m)
	})

	var clip clipboardIO = noClipboard{}
	if cfg.Clipboard {
		if err := clipboard.Init(); err != nil {
			log.Printf("Clipboard unavailable: %v", err)
		} else {
			clip = systemClipboard{}
		}
	}

	sh := newShell(session, catalog, clip, os.Stdout)

	if *importCode != "" {
		sh.exec("import " + *importCode)
	}
	if *scriptName != "" {
		src, err := script.Load(*scriptName)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		if err := script.Run(context.Background(), session, src); err != nil {
			log.Fatalf("Script failed: %v", err)
		}
	}
	if *batch {
		sh.exec("export")
		return
	}

	sh.run(os.Stdin)
}

type clipboardIO interface {
	Write(text string) bool
	Read() (string, bool)
}

type noClipboard struct{}

func (noClipboard) Write(string) bool { return false }
func (noClipboard) Read() (string, bool) { return "", false }

type systemClipboard struct{}

func (systemClipboard) Write(text string) bool {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return true
}

func (systemClipboard) Read() (string, bool) {
	data := clipboard.Read(clipboard.FmtText)
	return string(data), data != nil
}
