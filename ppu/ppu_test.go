package ppu

import "testing"

type fakeBus struct {
	chr      [0x2000]uint8
	mirror   MirrorMode
	nmiCount int
}

func (b *fakeBus) PPURead(addr uint16) uint8        { return b.chr[addr] }
func (b *fakeBus) PPUWrite(addr uint16, val uint8)  { b.chr[addr] = val }
func (b *fakeBus) Mirroring() MirrorMode            { return b.mirror }
func (b *fakeBus) TriggerNMI()                      { b.nmiCount++ }

func newTestPPU() (*PPU, *fakeBus) {
	b := &fakeBus{mirror: MirrorHorizontal}
	return New(b), b
}

func runDots(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

func TestPPUCTRLWriteSetsTemporaryNametableBits(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUCTRL, 0x03)
	if p.t.nametableX() != 1 || p.t.nametableY() != 1 {
		t.Error("PPUCTRL bits 0-1 should land in t's nametable select bits")
	}
}

func TestPPUADDRDoubleWriteLatchesV(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUADDR, 0x21)
	p.WriteReg(PPUADDR, 0x08)
	if p.v.data != 0x2108 {
		t.Errorf("v = 0x%04x, want 0x2108", p.v.data)
	}
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p, b := newTestPPU()
	b.chr[0x0010] = 0x55
	p.WriteReg(PPUADDR, 0x00)
	p.WriteReg(PPUADDR, 0x10)

	first := p.ReadReg(PPUDATA)
	if first != 0 {
		t.Errorf("first PPUDATA read should return stale buffer contents, got 0x%02x", first)
	}
	second := p.ReadReg(PPUDATA)
	if second != 0x55 {
		t.Errorf("second PPUDATA read should return the buffered byte, got 0x%02x", second)
	}

	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x00)
	p.WriteReg(PPUDATA, 0x2A)
	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x00)
	if got := p.ReadReg(PPUDATA); got != 0x2A {
		t.Errorf("palette PPUDATA read should bypass the buffer, got 0x%02x", got)
	}
}

func TestVblankSetsStatusAndTriggersNMI(t *testing.T) {
	p, b := newTestPPU()
	p.WriteReg(PPUCTRL, CTRL_GENERATE_NMI)

	p.scanline, p.dot = 240, 340
	runDots(p, 3) // cross into scanline 241, dot 1

	if p.status&STATUS_VERTICAL_BLANK == 0 {
		t.Error("STATUS_VERTICAL_BLANK should be set at scanline 241 dot 1")
	}
	if b.nmiCount != 1 {
		t.Errorf("NMI should have fired once, fired %d times", b.nmiCount)
	}
	if !p.FrameReady() {
		t.Error("a completed frame should be reported ready")
	}
}

func TestPreRenderClearsStatusFlags(t *testing.T) {
	p, _ := newTestPPU()
	p.status = STATUS_VERTICAL_BLANK | STATUS_SPRITE_0_HIT | STATUS_SPRITE_OVERFLOW
	p.scanline, p.dot = 260, 340
	runDots(p, 3) // into scanline 261, dot 1

	if p.status != 0 {
		t.Errorf("status = 0x%02x, want all flags cleared at pre-render dot 1", p.status)
	}
}

func TestOAMDataForcedDuringEvaluationWindow(t *testing.T) {
	p, _ := newTestPPU()
	p.scanline, p.dot = 10, 32
	if got := p.ReadReg(OAMDATA); got != 0xFF {
		t.Errorf("OAMDATA during cycles 1-64 = 0x%02x, want 0xFF", got)
	}
}

func TestSpriteOverflowOnNinthMatch(t *testing.T) {
	p, _ := newTestPPU()
	p.mask = MASK_SHOW_SPRITES | MASK_SHOW_BACKGROUND
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 50 // all nine sprites intersect scanline 50
	}
	p.evaluateSprites(50)

	if p.status&STATUS_SPRITE_OVERFLOW == 0 {
		t.Error("a ninth intersecting sprite should set STATUS_SPRITE_OVERFLOW")
	}
	if p.spriteCount != 8 {
		t.Errorf("spriteCount = %d, want 8 (secondary OAM holds at most 8)", p.spriteCount)
	}
}

func TestPaletteBackdropMirror(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x00)
	p.WriteReg(PPUDATA, 0x20)
	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x10)
	p.WriteReg(PPUDATA, 0x10)

	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x00)
	if got := p.ReadReg(PPUDATA); got != 0x10 {
		t.Errorf("read at 0x3F00 = 0x%02x, want 0x10 (0x3F10 aliases 0x3F00)", got)
	}
}

func TestMirrorHorizontalNametableAddr(t *testing.T) {
	p, _ := newTestPPU()
	// $2000 and $2400 share the same 1KB bank under horizontal mirroring.
	a1 := p.nametableAddr(0x2000)
	a2 := p.nametableAddr(0x2400)
	if a1 != a2 {
		t.Errorf("horizontal mirroring: 0x2000 -> %d, 0x2400 -> %d, want equal", a1, a2)
	}
	a3 := p.nametableAddr(0x2800)
	if a3 == a1 {
		t.Error("0x2800 should land in the other 1KB bank under horizontal mirroring")
	}
}
