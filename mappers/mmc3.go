package mappers

import "github.com/bdwalton/gintendo/ppu"

// mmc3 is mapper 4: eight independently selectable bank registers (two
// 2 KiB CHR pairs, four 1 KiB CHR banks, two swappable 8 KiB PRG banks)
// plus a scanline IRQ counter clocked off A12 transitions the PPU's
// pattern-table fetches produce.
type mmc3 struct {
	prgROM *BankedMemory
	chrROM *BankedMemory
	prgRAM *BankedMemory // nil when the board has no PRG-RAM

	prgSel   [3]int
	chrSel   [8]int
	bankRegs [8]uint8
	bankSel  uint8

	ciSel      [4]int
	fourScreen bool

	prgRAMEnable bool
	prgRAMWP     bool

	irqCounter  uint8
	irqLatch    uint8
	irqReload   bool
	irqEnable   bool
	prevA12     bool
	irqThrown   bool
	irqAsserted bool
}

func newMMC3(info Info) *mmc3 {
	prgBanks := len(info.PRG) / mmc3PRGBankSize
	chrBanks := len(info.CHR) / mmc3CHRBankSize

	m := &mmc3{
		prgROM:       LoadBankedMemory(info.PRG, mmc3PRGBankSize, prgBanks),
		chrROM:       LoadBankedMemory(info.CHR, mmc3CHRBankSize, chrBanks),
		prgRAMEnable: true,
	}

	switch info.Mirroring {
	case ppu.MirrorFourScreen:
		m.ciSel = [4]int{0, 1, 2, 3}
		m.fourScreen = true
	case ppu.MirrorVertical:
		m.ciSel = [4]int{0, 1, 0, 1}
	default:
		m.ciSel = [4]int{0, 0, 1, 1}
	}

	if info.PRGRAMBanks != 0 {
		m.prgRAM = NewBankedMemory(PRGRAMBankSize, 1)
	}

	m.updateBanks()
	return m
}

func (m *mmc3) updateBanks() {
	a12Inverted := m.bankSel&0x80 != 0
	prgModeInverted := m.bankSel&0x40 != 0

	chrOffs := 0
	if a12Inverted {
		chrOffs = 4
	}
	prgSecondToLast, prgR6 := 2, 0
	if prgModeInverted {
		prgSecondToLast, prgR6 = 0, 2
	}

	m.chrSel[0+chrOffs] = int(m.bankRegs[0] &^ 0x01)
	m.chrSel[1+chrOffs] = int(m.bankRegs[0] | 0x01)
	m.chrSel[2+chrOffs] = int(m.bankRegs[1] &^ 0x01)
	m.chrSel[3+chrOffs] = int(m.bankRegs[1] | 0x01)
	m.chrSel[4-chrOffs] = int(m.bankRegs[2])
	m.chrSel[5-chrOffs] = int(m.bankRegs[3])
	m.chrSel[6-chrOffs] = int(m.bankRegs[4])
	m.chrSel[7-chrOffs] = int(m.bankRegs[5])

	m.prgSel[prgR6] = int(m.bankRegs[6])
	m.prgSel[1] = int(m.bankRegs[7])
	m.prgSel[prgSecondToLast] = m.prgROM.BankCount() - 2
}

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		if m.prgRAM == nil || !m.prgRAMEnable {
			return 0
		}
		return m.prgRAM.Read(0, addr)
	case addr < 0xA000:
		return m.prgROM.Read(m.prgSel[0], addr)
	case addr < 0xC000:
		return m.prgROM.Read(m.prgSel[1], addr)
	case addr < 0xE000:
		return m.prgROM.Read(m.prgSel[2], addr)
	default:
		return m.prgROM.Read(m.prgROM.BankCount()-1, addr)
	}
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr < 0x6000:
		return
	case addr < 0x8000:
		if m.prgRAM != nil && m.prgRAMEnable && !m.prgRAMWP {
			m.prgRAM.Write(0, addr, val)
		}
	case addr < 0xA000:
		if addr&0x01 != 0 {
			m.bankRegs[m.bankSel&0x07] = val
		} else {
			m.bankSel = val
		}
		m.updateBanks()
	case addr < 0xC000:
		if addr&0x01 != 0 {
			m.prgRAMEnable = val&0x80 != 0
			m.prgRAMWP = val&0x40 != 0
		} else if !m.fourScreen {
			if val&0x01 != 0 {
				m.ciSel = [4]int{0, 0, 1, 1} // horizontal
			} else {
				m.ciSel = [4]int{0, 1, 0, 1} // vertical
			}
		}
	case addr < 0xE000:
		if addr&0x01 != 0 {
			m.irqReload = true
			m.irqThrown = false
		} else {
			m.irqLatch = val
		}
	default:
		if addr&0x01 != 0 {
			m.irqEnable = true
		} else {
			m.irqEnable = false
			m.irqAsserted = false
			m.irqCounter = m.irqLatch
		}
	}
}

func (m *mmc3) clockIRQCounter(addr uint16) {
	a12 := addr < 0x2000 && addr&0x1000 != 0
	risingEdge := !m.prevA12 && a12
	m.prevA12 = a12
	if !risingEdge {
		return
	}

	if m.irqCounter == 0 || m.irqReload {
		m.irqReload = false
		m.irqCounter = m.irqLatch
	} else {
		m.irqCounter--
	}

	if m.irqEnable && m.irqCounter == 0 {
		if m.irqLatch > 0 || (m.irqLatch == 0 && !m.irqThrown) {
			m.irqThrown = true
			m.irqAsserted = true
		}
	}
}

func (m *mmc3) PPURead(addr uint16) uint8 {
	m.clockIRQCounter(addr)
	return m.chrROM.Read(m.chrSel[addr/mmc3CHRBankSize], addr)
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	m.clockIRQCounter(addr)
}

func (m *mmc3) Mirroring() ppu.MirrorMode {
	if m.fourScreen {
		return ppu.MirrorFourScreen
	}
	if m.ciSel == [4]int{0, 1, 0, 1} {
		return ppu.MirrorVertical
	}
	return ppu.MirrorHorizontal
}

// IRQ reports the asserted state and clears the externally visible flag,
// matching the reference mapper's read-clears-on-observe convention.
func (m *mmc3) IRQ() bool {
	ret := m.irqAsserted
	m.irqAsserted = false
	return ret
}

func (m *mmc3) SupportsSaveStates() bool { return m.prgRAM != nil }

func (m *mmc3) BatteryRAM() []uint8 {
	if m.prgRAM == nil {
		panic("mappers: MMC3 cartridge has no battery RAM")
	}
	return m.prgRAM.Data()
}

func (m *mmc3) SetBatteryRAM(data []uint8) {
	if m.prgRAM == nil {
		panic("mappers: MMC3 cartridge has no battery RAM")
	}
	m.prgRAM.Reload(data)
}
