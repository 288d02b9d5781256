package main

import (
	"context"
	"flag"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/bdwalton/gintendo/console"
	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/nesrom"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

var cli struct {
	ROM      string `arg:"" help:"Path to the NES ROM to run." type:"existingfile"`
	Headless bool   `help:"Run without opening a window, for scripted smoke runs."`
	Frames   int    `help:"With --headless, stop after this many completed frames (0 = unbounded)."`
	Debug    bool   `help:"Attach the interactive debug monitor instead of running the game loop."`
	SaveDir  string `help:"Directory battery-RAM save states are kept in." type:"existingdir" optional:""`
	LogLevel int    `help:"glog verbosity level." default:"0"`
}

// savePath derives the save-state filename for rom inside dir.
func savePath(dir, rom string) string {
	base := strings.TrimSuffix(filepath.Base(rom), filepath.Ext(rom))
	return filepath.Join(dir, base+".sav")
}

func main() {
	kong.Parse(&cli, kong.Description("gintendo: a cycle-accurate NES emulator core."))
	defer glog.Flush()

	// glog registers its flags on the default FlagSet, which kong never
	// parses; feed it the verbosity level by hand.
	flag.CommandLine.Parse(nil)
	flag.Set("v", strconv.Itoa(cli.LogLevel))

	rom, err := nesrom.New(cli.ROM)
	if err != nil {
		glog.Exitf("couldn't load ROM %q: %v", cli.ROM, err)
	}
	glog.Infof("loaded ROM %q: %v", cli.ROM, rom)

	cart, err := mappers.Load(mappers.Info{
		MapperID:    rom.MapperNum(),
		PRG:         rom.PRG(),
		CHR:         rom.CHR(),
		PRGRAMBanks: rom.PRGRAMBanks(),
		Battery:     rom.HasBattery(),
		Mirroring:   rom.MirroringMode(),
	})
	if err != nil {
		glog.Exitf("couldn't load cartridge: %v", err)
	}
	glog.Infof("mapper %d selected", rom.MapperNum())

	bus := console.New(cart)

	var save string
	if cli.SaveDir != "" {
		save = savePath(cli.SaveDir, cli.ROM)
		if err := bus.LoadSaveState(save); err != nil {
			glog.Warningf("couldn't load save-state %q: %v", save, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case cli.Debug:
		bus.BIOS(ctx)
	case cli.Headless:
		bus.RunHeadless(ctx, cli.Frames)
	default:
		go bus.Run(ctx)
		if err := ebiten.RunGame(bus); err != nil {
			glog.Errorf("ebiten exited with error: %v", err)
		}
	}

	if save != "" {
		if err := bus.SaveState(save); err != nil {
			glog.Errorf("couldn't write save-state %q: %v", save, err)
		} else if bus.Cartridge().SupportsSaveStates() {
			glog.Infof("save-state written to %q", save)
		}
	}
}
