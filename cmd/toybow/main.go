package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/toybow/internal/application/bow"
	"github.com/younwookim/toybow/internal/application/game"
	"github.com/younwookim/toybow/internal/application/replay"
	"github.com/younwookim/toybow/internal/application/scene/archery"
	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/infrastructure/audio"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// options are the parsed command line flags
type options struct {
	rangeName  string
	hand       string
	record     string
	replay     string
	mute       bool
	listRanges bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fset := flag.NewFlagSet("toybow", flag.ContinueOnError)
	fset.StringVar(&o.rangeName, "range", "demo", "Range to load from configs/ranges")
	fset.StringVar(&o.hand, "hand", "left", "Hand that grabs the bow (left or right)")
	fset.StringVar(&o.record, "record", "", "Record input to file (e.g., -record replay.json)")
	fset.StringVar(&o.replay, "replay", "", "Replay a recorded file headless and print a summary")
	fset.BoolVar(&o.mute, "mute", false, "Disable audio")
	fset.BoolVar(&o.listRanges, "list", false, "List available ranges and exit")
	if err := fset.Parse(args); err != nil {
		return o, err
	}
	if o.record != "" && o.replay != "" {
		return o, errors.New("-record and -replay are mutually exclusive")
	}
	return o, nil
}

func newLoader() *config.Loader {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	return config.NewFSLoader(fsys, "configs")
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	loader := newLoader()

	if opts.listRanges {
		names, err := loader.ListRanges()
		if err != nil {
			log.Fatalf("Failed to list ranges: %v", err)
		}
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	if opts.replay != "" {
		summary, err := runReplay(loader, opts.replay)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Printf("frames=%d arrows=%d shots=%d hits=%d score=%d\n",
			summary.Frames, summary.Arrows, summary.Shots, summary.Hits, summary.Score)
		return
	}

	hand, err := entity.ParseHand(opts.hand)
	if err != nil {
		log.Fatalf("Invalid -hand: %v", err)
	}

	cfg, err := loader.LoadAll(opts.rangeName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := runLive(cfg, opts, hand); err != nil {
		log.Fatal(err)
	}
}

// startAudio opens the speaker unless muted or disabled. The returned close
// func is never nil.
func startAudio(cfg config.AudioConfig, mute bool) (bow.AudioPlayer, func()) {
	if mute || !cfg.Enabled {
		return nil, func() {}
	}
	p := audio.NewPlayer(cfg, nil)
	if err := p.Initialize(); err != nil {
		log.Printf("Audio disabled: %v", err)
		return nil, func() {}
	}
	return p, p.Close
}

// runLive opens the window and plays until it is closed
func runLive(cfg *config.GameConfig, opts options, hand entity.Hand) error {
	// Audio is optional: without a device the game runs silent
	player, closeAudio := startAudio(cfg.Audio, opts.mute)
	defer closeAudio()

	rangeScene, err := archery.New(cfg, archery.Options{
		Hand:       hand,
		Audio:      player,
		RecordPath: opts.record,
	})
	if err != nil {
		return fmt.Errorf("failed to create range: %w", err)
	}

	view := cfg.Range.View
	g := game.New(rangeScene, view.ScreenWidth, view.ScreenHeight)
	g.SetFramerate(view.Framerate)

	// Set up ebiten
	ebiten.SetWindowSize(view.ScreenWidth*max(view.Scale, 1), view.ScreenHeight*max(view.Scale, 1))
	ebiten.SetWindowTitle("toybow - " + cfg.Range.Name)
	if view.Framerate > 0 {
		ebiten.SetTPS(view.Framerate)
	}

	// Run game
	runErr := ebiten.RunGame(g)
	g.Close()
	return runErr
}

// runReplay plays a recording headless on the range it was recorded on
func runReplay(loader *config.Loader, path string) (archery.Summary, error) {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return archery.Summary{}, err
	}

	hand, err := entity.ParseHand(data.Hand)
	if err != nil {
		return archery.Summary{}, err
	}

	cfg, err := loader.LoadAll(data.Range)
	if err != nil {
		return archery.Summary{}, err
	}

	rangeScene, err := archery.New(cfg, archery.Options{
		Hand:  hand,
		Input: replay.NewReplayer(*data),
	})
	if err != nil {
		return archery.Summary{}, err
	}

	summary := rangeScene.RunToEnd()
	rangeScene.OnExit()
	return summary, nil
}
