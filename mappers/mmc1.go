package mappers

import "github.com/bdwalton/gintendo/ppu"

// mmc1ShiftReg is the serial shift register every $8000-$FFFF write feeds
// bit 0 into, LSB-first; a one-shot high bit in the register marks it
// "full" so the fifth write can be detected without a separate counter.
type mmc1ShiftReg struct{ v uint8 }

const (
	mmc1ShiftInit = 0x80 // one-shot marker bit starts at position 7
	mmc1FullMask  = 0x04 // reaches position 2 after 5 shifts, marking "full"
)

func (s *mmc1ShiftReg) reset() { s.v = mmc1ShiftInit }

// enqueue shifts bit 0 of val in LSB-first. A byte with bit 7 set resets
// the register immediately instead of shifting; otherwise, if the
// register already held a completed 5-bit value from an earlier write,
// it resets before accepting the new bit so a stray 6th write starts a
// fresh sequence rather than appending to a stale one.
func (s *mmc1ShiftReg) enqueue(val uint8) {
	if val&0x80 != 0 {
		s.v = mmc1ShiftInit
		return
	}
	if s.ready() {
		s.v = mmc1ShiftInit
	}
	s.v >>= 1
	s.v |= (val & 0x01) << 7
}

func (s *mmc1ShiftReg) ready() bool  { return s.v&mmc1FullMask != 0 }
func (s *mmc1ShiftReg) value() uint8 { return (s.v >> 3) & 0x1F }

// mmc1 is mapper 1: a serial-shift-register interface onto four control
// registers (ctrl/chr0/chr1/prg) that together select PRG/CHR banking
// mode, nametable mirroring, and PRG-RAM gating.
type mmc1 struct {
	prgROM    *BankedMemory
	chrMem    *BankedMemory
	useCHRRAM bool
	prgRAM    *BankedMemory

	shift mmc1ShiftReg
	ctrl  uint8
	chr0  uint8
	chr1  uint8
	prg   uint8

	prgSel [2]int
	chrSel [2]int
}

func newMMC1(info Info) *mmc1 {
	prgBanks := len(info.PRG) / PRGROMBankSize
	m := &mmc1{
		prgROM: LoadBankedMemory(info.PRG, PRGROMBankSize, prgBanks),
		ctrl:   0x0C, // power-on default: PRG mode 3 (fix last bank at $C000)
	}

	if len(info.CHR) == 0 {
		m.useCHRRAM = true
		m.chrMem = NewBankedMemory(mmc1ChrBankSize, mmc1ChrRAMBanks)
	} else {
		m.chrMem = LoadBankedMemory(info.CHR, mmc1ChrBankSize, len(info.CHR)/mmc1ChrBankSize)
	}

	banks := info.PRGRAMBanks
	if banks == 0 {
		banks = 1
	}
	m.prgRAM = NewBankedMemory(PRGRAMBankSize, banks)

	m.shift.reset()
	m.updateBanks()
	return m
}

func (m *mmc1) updateBanks() {
	chr8K := m.ctrl&0x10 == 0
	if chr8K {
		m.chrSel[0] = int(m.chr0 &^ 0x01)
		m.chrSel[1] = int(m.chr0 | 0x01)
	} else {
		m.chrSel[0] = int(m.chr0)
		m.chrSel[1] = int(m.chr1)
	}

	bank := int(m.prg & 0x0F)
	switch (m.ctrl >> 2) & 0x03 {
	case 0, 1:
		m.prgSel[0] = bank &^ 0x01
		m.prgSel[1] = bank | 0x01
	case 2:
		m.prgSel[0] = 0
		m.prgSel[1] = bank
	case 3:
		m.prgSel[0] = bank
		m.prgSel[1] = m.prgROM.BankCount() - 1
	}
}

func (m *mmc1) prgRAMEnabled() bool { return m.prg&0x10 == 0 }

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		if !m.prgRAMEnabled() {
			return 0
		}
		return m.prgRAM.Read(0, addr)
	case addr < 0xC000:
		return m.prgROM.Read(m.prgSel[0], addr)
	default:
		return m.prgROM.Read(m.prgSel[1], addr)
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr < 0x6000:
		return
	case addr < 0x8000:
		if m.prgRAMEnabled() {
			m.prgRAM.Write(0, addr, val)
		}
	default:
		m.shift.enqueue(val)
		if val&0x80 != 0 {
			m.ctrl |= 0x0C
			m.updateBanks()
			return
		}

		if m.shift.ready() {
			v := m.shift.value()
			switch (addr >> 13) & 0x03 {
			case 0:
				m.ctrl = v
			case 1:
				m.chr0 = v
			case 2:
				m.chr1 = v
			case 3:
				m.prg = v
			}
			m.updateBanks()
		}
	}
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	if addr < 0x1000 {
		return m.chrMem.Read(m.chrSel[0], addr)
	}
	return m.chrMem.Read(m.chrSel[1], addr)
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if !m.useCHRRAM {
		return
	}
	if addr < 0x1000 {
		m.chrMem.Write(m.chrSel[0], addr, val)
	} else {
		m.chrMem.Write(m.chrSel[1], addr, val)
	}
}

func (m *mmc1) Mirroring() ppu.MirrorMode {
	switch m.ctrl & 0x03 {
	case 0:
		return ppu.MirrorSingleLower
	case 1:
		return ppu.MirrorSingleUpper
	case 2:
		return ppu.MirrorVertical
	default:
		return ppu.MirrorHorizontal
	}
}

func (m *mmc1) IRQ() bool { return false }

func (m *mmc1) SupportsSaveStates() bool   { return true }
func (m *mmc1) BatteryRAM() []uint8        { return m.prgRAM.Data() }
func (m *mmc1) SetBatteryRAM(data []uint8) { m.prgRAM.Reload(data) }
