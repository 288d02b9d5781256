package mappers

import (
	"testing"

	"github.com/bdwalton/gintendo/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMMC3Fixture(t *testing.T) *mmc3 {
	t.Helper()
	info := Info{
		MapperID:    4,
		PRG:         make([]uint8, mmc3PRGBankSize*8),
		CHR:         make([]uint8, mmc3CHRBankSize*16),
		PRGRAMBanks: 1,
		Mirroring:   ppu.MirrorHorizontal,
	}
	c, err := Load(info)
	require.NoError(t, err)
	m, ok := c.(*mmc3)
	require.True(t, ok)
	return m
}

// clockA12 simulates the PPU background/sprite fetch pattern that toggles
// A12 low then high once per scanline's worth of pattern-table accesses.
func clockA12(m *mmc3, high bool) {
	if high {
		m.PPURead(0x1000)
	} else {
		m.PPURead(0x0000)
	}
}

func TestMMC3IRQCounterReloadsAndFiresOnZero(t *testing.T) {
	m := newMMC3Fixture(t)
	m.CPUWrite(0xC000, 4) // irq latch = 4
	m.CPUWrite(0xC001, 0) // force reload on next clock
	m.CPUWrite(0xE001, 0) // enable IRQ

	clockA12(m, false)
	clockA12(m, true) // rising edge: reload to latch value (4)
	assert.Equal(t, uint8(4), m.irqCounter)
	assert.False(t, m.IRQ())

	for i := 0; i < 4; i++ {
		clockA12(m, false)
		clockA12(m, true)
	}
	assert.Equal(t, uint8(0), m.irqCounter)
	assert.True(t, m.IRQ(), "counter reaching zero with IRQs enabled asserts the line")
	assert.False(t, m.IRQ(), "IRQ() clears the asserted flag once observed")
}

func TestMMC3IRQDisabledNeverAsserts(t *testing.T) {
	m := newMMC3Fixture(t)
	m.CPUWrite(0xC000, 0)
	m.CPUWrite(0xC001, 0)
	m.CPUWrite(0xE000, 0) // disable IRQ

	for i := 0; i < 3; i++ {
		clockA12(m, false)
		clockA12(m, true)
	}
	assert.False(t, m.IRQ())
}

func TestMMC3BankSelectSwapsPRGWindows(t *testing.T) {
	m := newMMC3Fixture(t)
	m.CPUWrite(0x8000, 0x06) // select bank register R6
	m.CPUWrite(0x8001, 2)    // R6 = bank 2
	assert.Equal(t, 2, m.prgSel[0], "R6 lands at $8000 when PRG mode bit is clear")
	assert.Equal(t, m.prgROM.BankCount()-2, m.prgSel[2], "$C000 is fixed to the second-to-last bank")

	m.CPUWrite(0x8000, 0x46) // set PRG mode bit (swap $8000/$C000)
	m.CPUWrite(0x8001, 3)    // R6 = bank 3
	assert.Equal(t, 3, m.prgSel[2], "R6 now lands at $C000")
	assert.Equal(t, m.prgROM.BankCount()-2, m.prgSel[0], "$8000 now fixed to the second-to-last bank")
}
