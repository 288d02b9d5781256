package mappers

import "github.com/bdwalton/gintendo/ppu"

// cnrom is mapper 3: PRG-ROM is fixed (16 or 32 KiB, mirroring the single
// bank if only one is present), and any write to $8000-$FFFF selects one
// of up to four 8 KiB CHR-ROM banks.
type cnrom struct {
	prgROM  *BankedMemory
	chrROM  *BankedMemory
	chrBank uint8
	mirror  ppu.MirrorMode
}

func newCNROM(info Info) *cnrom {
	prgBanks := len(info.PRG) / PRGROMBankSize
	return &cnrom{
		prgROM: LoadBankedMemory(info.PRG, PRGROMBankSize, prgBanks),
		chrROM: LoadBankedMemory(info.CHR, CHRROMBankSize, len(info.CHR)/CHRROMBankSize),
		mirror: info.Mirroring,
	}
}

func (m *cnrom) CPURead(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return 0
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

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.chrBank = val & 0x03
	}
}

func (m *cnrom) PPURead(addr uint16) uint8       { return m.chrROM.Read(int(m.chrBank), addr) }
func (m *cnrom) PPUWrite(addr uint16, val uint8) {}

func (m *cnrom) Mirroring() ppu.MirrorMode { return m.mirror }
func (m *cnrom) IRQ() bool                 { return false }

func (m *cnrom) SupportsSaveStates() bool   { return false }
func (m *cnrom) BatteryRAM() []uint8        { panic("mappers: CNROM does not support save states") }
func (m *cnrom) SetBatteryRAM(data []uint8) { panic("mappers: CNROM does not support save states") }
