package mappers

import (
	"testing"

	"github.com/bdwalton/gintendo/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMMC1Fixture(t *testing.T, prgBanks int) *mmc1 {
	t.Helper()
	info := Info{
		MapperID: 1,
		PRG:      make([]uint8, PRGROMBankSize*prgBanks),
		CHR:      nil, // CHR-RAM board
	}
	c, err := Load(info)
	require.NoError(t, err)
	m, ok := c.(*mmc1)
	require.True(t, ok)
	return m
}

// writeSerial feeds the five LSBs of val into the shift register one write
// at a time, as real NES software must (consecutive-cycle writes to the
// same address are ignored by hardware, but this test drives the model
// directly rather than through a CPU).
func writeSerial(m *mmc1, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		bit := (val >> i) & 0x01
		m.CPUWrite(addr, bit)
	}
}

func TestMMC1ShiftRegisterCommitsLSBFirst(t *testing.T) {
	m := newMMC1Fixture(t, 2)
	// Five writes of b0..b4 commit value b4 b3 b2 b1 b0 into the target
	// register selected by addr bits 14:13. 0b10101 = 0x15 written to the
	// PRG bank register ($E000-$FFFF).
	writeSerial(m, 0xE000, 0x15)
	assert.Equal(t, uint8(0x15), m.prg)
}

func TestMMC1BitSevenResetsWithoutCommitting(t *testing.T) {
	m := newMMC1Fixture(t, 2)
	m.CPUWrite(0xE000, 0x01)
	m.CPUWrite(0xE000, 0x80) // reset mid-sequence
	assert.Equal(t, uint8(0), m.prg, "reset write must not commit a partial value")
	assert.Equal(t, uint8(0x0C), m.ctrl&0x0C, "reset forces PRG mode 3")
}

func TestMMC1PRGMode3FixesLastBank(t *testing.T) {
	m := newMMC1Fixture(t, 4)
	writeSerial(m, 0xE000, 0x01) // select PRG bank 1, mode 3 (default ctrl)
	assert.Equal(t, 1, m.prgSel[0])
	assert.Equal(t, 3, m.prgSel[1], "mode 3 fixes the last bank at $C000")
}

func TestMMC1MirroringFromControlBits(t *testing.T) {
	m := newMMC1Fixture(t, 2)
	writeSerial(m, 0x8000, 0x02) // ctrl bits 1:0 = vertical
	assert.Equal(t, ppu.MirrorVertical, m.Mirroring())
}
