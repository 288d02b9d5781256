// Package console wires the CPU, PPU, cartridge and controllers together
// into the memory-mapped bus the NES uses in place of a real address
// decoder, and drives the cycle-accurate 1-CPU-cycle-per-3-PPU-dots
// schedule that makes the whole machine tick.
package console

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/mos6502"
	"github.com/bdwalton/gintendo/ppu"
	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	internalRAMSize = 0x0800 // 2 KiB, mirrored through 0x1FFF

	maxInternalRAMMirror = 0x1FFF
	maxPPURegMirror      = 0x3FFF
	maxIORegion          = 0x4020

	regOAMDMA      = 0x4014
	regController1 = 0x4016
	regController2 = 0x4017
)

// Bus is the NES's central memory bus: it owns the CPU, PPU, cartridge
// and both controller ports, and is the sole implementor of both
// mos6502.Bus and ppu.Bus. Neither chip ever reaches into the other
// directly; every cross-chip effect (NMI, CHR access, mirroring) is
// mediated here.
type Bus struct {
	cpu  *mos6502.CPU
	ppu  *ppu.PPU
	cart mappers.Cartridge
	ram  [internalRAMSize]uint8

	pad1, pad2 controller

	dots uint64
}

// New builds a Bus around an already-loaded cartridge and wires up an
// ebiten window sized to twice the PPU's native resolution.
func New(cart mappers.Cartridge) *Bus {
	b := &Bus{cart: cart}
	b.cpu = mos6502.New(b)
	b.ppu = ppu.New(b)
	b.cpu.Reset()

	w, h := b.ppu.GetResolution()
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return b
}

// CPU exposes the CPU for host tooling (debug REPL, save-state capture).
func (b *Bus) CPU() *mos6502.CPU { return b.cpu }

// Cartridge exposes the loaded cartridge for save-state persistence.
func (b *Bus) Cartridge() mappers.Cartridge { return b.cart }

// Read implements mos6502.Bus.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= maxInternalRAMMirror:
		return b.ram[addr&(internalRAMSize-1)]
	case addr <= maxPPURegMirror:
		return b.ppu.ReadReg(0x2000 + addr&0x07)
	case addr == regController1:
		return b.pad1.read()
	case addr == regController2:
		return b.pad2.read()
	case addr < maxIORegion:
		return 0 // APU and unimplemented I/O read as 0
	default:
		return b.cart.CPURead(addr)
	}
}

// Write implements mos6502.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= maxInternalRAMMirror:
		b.ram[addr&(internalRAMSize-1)] = val
	case addr <= maxPPURegMirror:
		b.ppu.WriteReg(0x2000+addr&0x07, val)
	case addr == regOAMDMA:
		b.oamDMA(val)
	case addr == regController1:
		b.pad1.write(val)
		b.pad2.write(val)
	case addr < maxIORegion:
		// APU registers and $4017 frame counter: not modeled.
	default:
		b.cart.CPUWrite(addr, val)
	}
}

// oamDMA copies 256 bytes from page val<<8 into OAM and charges the CPU
// the 513/514-cycle stall (parity-dependent; see mos6502.AddDMACycles).
func (b *Bus) oamDMA(val uint8) {
	base := uint16(val) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(b.Read(base + uint16(i)))
	}
	b.cpu.AddDMACycles()
}

// PPURead implements ppu.Bus: pattern-table space only.
func (b *Bus) PPURead(addr uint16) uint8 { return b.cart.PPURead(addr) }

// PPUWrite implements ppu.Bus.
func (b *Bus) PPUWrite(addr uint16, val uint8) { b.cart.PPUWrite(addr, val) }

// Mirroring implements ppu.Bus.
func (b *Bus) Mirroring() ppu.MirrorMode { return b.cart.Mirroring() }

// TriggerNMI implements ppu.Bus; called at the start of vblank.
func (b *Bus) TriggerNMI() { b.cpu.AssertInterrupt(mos6502.IntNMI) }

// SetButtons pushes a value-typed snapshot of the currently held buttons
// for one controller port; the host polls its input library once per
// displayed frame and replaces the whole byte atomically rather than
// letting either controller reach into ebiten itself.
func (b *Bus) SetButtons(port int, state uint8) {
	switch port {
	case 0:
		b.pad1.setButtons(state)
	case 1:
		b.pad2.setButtons(state)
	}
}

// Layout is part of ebiten.Game; returning the NES's native resolution
// makes ebiten do all window scaling for us.
func (b *Bus) Layout(w, h int) (int, int) { return b.ppu.GetResolution() }

// Draw is part of ebiten.Game; it blits the PPU's composed frame buffer.
func (b *Bus) Draw(screen *ebiten.Image) {
	w, h := b.ppu.GetResolution()
	px := b.ppu.GetPixels()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := px[y*w+x]
			screen.Set(x, y, color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
		}
	}
}

// Update is part of ebiten.Game. Emulation runs on its own goroutine
// (see Run); ebiten's loop exists only to pump input and redraw.
func (b *Bus) Update() error {
	b.SetButtons(0, pollKeys(padKeys))
	return nil
}

// framePeriod is the NTSC frame scanout interval Run paces itself to.
const framePeriod = 16666667 * time.Nanosecond

// step advances the machine by one PPU dot, ticking the CPU once for
// every third dot and polling the cartridge's IRQ line after the PPU
// access so mapper-driven interrupts (MMC3's scanline counter) reach
// the CPU in the same cycle the hardware would raise them.
func (b *Bus) step() {
	b.ppu.Step()
	if b.cart.IRQ() {
		b.cpu.AssertInterrupt(mos6502.IntIRQ)
	}
	b.dots++
	if b.dots%3 == 0 {
		b.cpu.Step()
	}
}

// Run drives the machine at the NES's fixed cadence. Whenever the PPU
// reports a whole scanout finished, Run blocks on the frame ticker so
// emulated time tracks wall-clock time.
func (b *Bus) Run(ctx context.Context) {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.step()
			if b.ppu.FrameFinished() {
				<-ticker.C
			}
		}
	}
}

// RunHeadless advances the machine as fast as the host allows, with no
// window and no wall-clock pacing. maxFrames > 0 bounds the run to that
// many completed scanouts, for scripted smoke tests; 0 runs until ctx
// is cancelled.
func (b *Bus) RunHeadless(ctx context.Context, maxFrames int) {
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
			b.step()
			if b.ppu.FrameFinished() {
				frames++
				if maxFrames > 0 && frames >= maxFrames {
					return
				}
			}
		}
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// BIOS is a minimal interactive debug monitor in the spirit of classic
// in-house emulator debuggers: single-step, run, reset, memory-range and
// cartridge-state dumps. Breakpoints can be added and cleared, but Run
// does not stop at them; there is no stack dump.
func (b *Bus) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x P=%02x cycles=%d\n\n",
			b.cpu.PC(), b.cpu.A(), b.cpu.X(), b.cpu.Y(), b.cpu.SP(), b.cpu.P(), b.cpu.Cycles())
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step the cpu one cycle")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(D)ump - spew.Dump the cartridge state")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("(Q)uit - shutdown the gintendo")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
			glog.Infof("breakpoints: %v", breaks)
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			b.Run(cctx)
		case 's', 'S':
			for i := 0; i < 3; i++ {
				b.step()
			}
		case 'e', 'E':
			b.cpu.Reset()
		case 'd', 'D':
			spew.Dump(b.cart)
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x += 1
				i += 1
			}
			fmt.Printf("\n\n")
		}
	}
}
