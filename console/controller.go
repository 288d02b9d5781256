package console

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// padKeys maps standard controller buttons to keyboard keys, LSB first:
// A, B, Select, Start, Up, Down, Left, Right.
var padKeys = []ebiten.Key{
	ebiten.KeyZ,
	ebiten.KeyX,
	ebiten.KeyShiftRight,
	ebiten.KeyEnter,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
}

// pollKeys reads the host keyboard once and packs the held buttons into
// a single byte snapshot. It is the only place in this package that
// touches ebiten's input API; everything downstream of it deals in
// plain uint8 values.
func pollKeys(keys []ebiten.Key) uint8 {
	var buttons uint8
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			buttons |= 1 << i
		}
	}
	return buttons
}

// controller models one standard NES controller's shift-register
// interface: $4016/$4017 writes set the strobe, and while strobed low
// each read shifts out the next button bit, LSB first, latching 1s once
// all eight bits have been read. buttons is the only field the host's
// Update goroutine ever touches (via setButtons); strobe/latched/idx are
// CPU-bus state, touched only from the emulation goroutine's Read/Write
// path, so the two goroutines only ever meet at the atomic snapshot.
type controller struct {
	buttons atomic.Uint32
	strobe  bool
	latched uint8
	idx     uint8
}

// setButtons replaces the controller's held-button snapshot. The host
// loop calls this once per displayed frame with the value it polled
// from its input library; no other mutable state crosses between the
// emulation goroutine and the host's Update loop.
func (c *controller) setButtons(state uint8) {
	c.buttons.Store(uint32(state))
}

func (c *controller) write(val uint8) {
	c.strobe = val&0x01 != 0
	if c.strobe {
		c.latched = uint8(c.buttons.Load())
		c.idx = 0
	}
}

// read returns one button bit per call, LSB first; bits 1-7 of the
// returned byte carry the open-bus value (0x40) real hardware leaves on
// the unused lines rather than reading back as 0.
func (c *controller) read() uint8 {
	if c.strobe {
		return (c.latched & 0x01) | 0x40
	}
	if c.idx > 7 {
		return 1 | 0x40
	}
	ret := (c.latched >> c.idx) & 0x01
	c.idx++
	return ret | 0x40
}
