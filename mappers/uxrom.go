package mappers

import "github.com/bdwalton/gintendo/ppu"

// uxrom is mapper 2: a single 4-bit bank register selects the 16 KiB
// window at $8000-$BFFF; $C000-$FFFF is hardwired to the last bank. CHR
// is always 8 KiB of RAM (no CHR-ROM on this board).
type uxrom struct {
	prgROM  *BankedMemory
	chrRAM  *BankedMemory
	bankSel uint8
	mirror  ppu.MirrorMode
}

func newUxROM(info Info) *uxrom {
	prgBanks := len(info.PRG) / PRGROMBankSize
	return &uxrom{
		prgROM: LoadBankedMemory(info.PRG, PRGROMBankSize, prgBanks),
		chrRAM: NewBankedMemory(CHRRAMBankSize, 1),
		mirror: info.Mirroring,
	}
}

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return 0
	case addr < 0xC000:
		return m.prgROM.Read(int(m.bankSel), addr)
	default:
		return m.prgROM.Read(m.prgROM.BankCount()-1, addr)
	}
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.bankSel = val & 0x0F
	}
}

func (m *uxrom) PPURead(addr uint16) uint8       { return m.chrRAM.Read(0, addr) }
func (m *uxrom) PPUWrite(addr uint16, val uint8) { m.chrRAM.Write(0, addr, val) }

func (m *uxrom) Mirroring() ppu.MirrorMode { return m.mirror }
func (m *uxrom) IRQ() bool                 { return false }

func (m *uxrom) SupportsSaveStates() bool   { return false }
func (m *uxrom) BatteryRAM() []uint8        { panic("mappers: UxROM does not support save states") }
func (m *uxrom) SetBatteryRAM(data []uint8) { panic("mappers: UxROM does not support save states") }
