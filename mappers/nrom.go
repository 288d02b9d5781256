package mappers

import "github.com/bdwalton/gintendo/ppu"

// nrom is mapper 0: fixed 16 KiB PRG-ROM banks (the second mirrored from
// the first when only one is present), fixed 8 KiB CHR-ROM (or CHR-RAM
// when the header declares no CHR banks), and 8 KiB of battery-backable
// PRG-RAM at $6000-$7FFF.
type nrom struct {
	prgRAM    *BankedMemory
	prgROM    *BankedMemory
	chrMem    *BankedMemory
	useCHRRAM bool
	mirror    ppu.MirrorMode
}

func newNROM(info Info) *nrom {
	prgBanks := len(info.PRG) / PRGROMBankSize
	m := &nrom{
		prgRAM: NewBankedMemory(PRGRAMBankSize, 1),
		prgROM: LoadBankedMemory(info.PRG, PRGROMBankSize, prgBanks),
		mirror: info.Mirroring,
	}
	if len(info.CHR) == 0 {
		m.useCHRRAM = true
		m.chrMem = NewBankedMemory(CHRRAMBankSize, 1)
	} else {
		m.chrMem = LoadBankedMemory(info.CHR, CHRROMBankSize, len(info.CHR)/CHRROMBankSize)
	}
	return m
}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		return m.prgRAM.Read(0, addr)
	case addr < 0xC000:
		return m.prgROM.Read(0, addr)
	default:
		bank := 0
		if m.prgROM.BankCount() > 1 {
			bank = 1
		}
		return m.prgROM.Read(bank, addr)
	}
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM.Write(0, addr, val)
	}
	// writes into ROM space are ignored
}

func (m *nrom) PPURead(addr uint16) uint8 { return m.chrMem.Read(0, addr) }

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.useCHRRAM {
		m.chrMem.Write(0, addr, val)
	}
}

func (m *nrom) Mirroring() ppu.MirrorMode { return m.mirror }
func (m *nrom) IRQ() bool                 { return false }

func (m *nrom) SupportsSaveStates() bool    { return true }
func (m *nrom) BatteryRAM() []uint8         { return m.prgRAM.Data() }
func (m *nrom) SetBatteryRAM(data []uint8)  { m.prgRAM.Reload(data) }
