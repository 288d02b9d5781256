package console

import (
	"testing"

	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCartridge is a minimal mappers.Cartridge stand-in: flat PRG/CHR
// byte slices addressed directly, no banking, so bus routing tests don't
// need a real iNES image.
type fakeCartridge struct {
	prg, chr [0x10000]uint8
	mirror   ppu.MirrorMode
	irq      bool
}

func (f *fakeCartridge) CPURead(addr uint16) uint8       { return f.prg[addr] }
func (f *fakeCartridge) CPUWrite(addr uint16, val uint8) { f.prg[addr] = val }
func (f *fakeCartridge) PPURead(addr uint16) uint8       { return f.chr[addr] }
func (f *fakeCartridge) PPUWrite(addr uint16, val uint8) { f.chr[addr] = val }
func (f *fakeCartridge) Mirroring() ppu.MirrorMode       { return f.mirror }
func (f *fakeCartridge) IRQ() bool                       { return f.irq }
func (f *fakeCartridge) SupportsSaveStates() bool        { return true }
func (f *fakeCartridge) BatteryRAM() []uint8             { return f.prg[0x6000:0x8000] }
func (f *fakeCartridge) SetBatteryRAM(data []uint8)      { copy(f.prg[0x6000:0x8000], data) }

func newTestBus() *Bus {
	return New(&fakeCartridge{mirror: ppu.MirrorHorizontal})
}

func TestBusInternalRAMMirrors(t *testing.T) {
	b := newTestBus()
	b.Write(0x0000, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0x0800), "0x0800 mirrors 0x0000")
	assert.Equal(t, uint8(0x42), b.Read(0x1800), "0x1800 mirrors 0x0000")
}

func TestBusCartridgeSpaceDelegates(t *testing.T) {
	b := newTestBus()
	b.Write(0x8000, 0x99)
	assert.Equal(t, uint8(0x99), b.Read(0x8000))
}

func TestBusControllerShiftsOutButtons(t *testing.T) {
	b := newTestBus()
	b.SetButtons(0, 0x01) // A held
	b.Write(regController1, 1)
	b.Write(regController1, 0) // strobe low: begin shifting out the latched buttons

	assert.Equal(t, uint8(1), b.Read(regController1)&0x01, "A is bit 0")
	for i := 0; i < 7; i++ {
		b.Read(regController1)
	}
	assert.Equal(t, uint8(1), b.Read(regController1)&0x01, "past 8 reads, controller reads back 1")
}

func TestBusOAMDMACopiesPageIntoOAM(t *testing.T) {
	b := newTestBus()
	b.Write(0x0200, 0x7F) // page 2, offset 0
	b.Write(regOAMDMA, 0x02)

	b.ppu.WriteReg(ppu.OAMADDR, 0)
	assert.Equal(t, uint8(0x7F), b.ppu.ReadReg(ppu.OAMDATA))
}

func TestNROMSmokeProgram(t *testing.T) {
	prg := make([]uint8, 2*mappers.PRGROMBankSize)
	copy(prg, []uint8{0xA9, 0x42, 0x85, 0x00, 0x00}) // LDA #$42; STA $00; BRK
	prg[0x7FFC] = 0x00                               // reset vector -> $8000
	prg[0x7FFD] = 0x80
	prg[0x7FFE] = 0x00 // BRK vector -> $9000
	prg[0x7FFF] = 0x90

	cart, err := mappers.Load(mappers.Info{
		MapperID: 0,
		PRG:      prg,
		CHR:      make([]uint8, mappers.CHRROMBankSize),
	})
	require.NoError(t, err)
	b := New(cart)

	for i := 0; i < 19; i++ { // reset(7) + LDA(2) + STA(3) + BRK(7)
		b.cpu.Step()
	}

	assert.Equal(t, uint8(0x42), b.ram[0x00])
	assert.Equal(t, uint16(0x9000), b.cpu.PC(), "BRK should have vectored through $FFFE")
	assert.Equal(t, uint64(19), b.cpu.Cycles())
}

func TestBusTriggerNMIAssertsInterrupt(t *testing.T) {
	b := newTestBus()
	b.TriggerNMI() // must not panic; CPU services it once the reset cycles are spent
	b.cpu.Step()
}
