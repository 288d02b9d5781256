package mappers

import (
	"fmt"

	"github.com/bdwalton/gintendo/ppu"
)

// Standard bank granularities used across the supported mapper set.
const (
	PRGROMBankSize = 16384
	PRGRAMBankSize = 8192
	CHRROMBankSize = 8192
	CHRRAMBankSize = 8192

	mmc1ChrBankSize = 4 * 1024
	mmc1ChrRAMBanks = (128 * 1024) / mmc1ChrBankSize

	mmc3PRGBankSize = 8192
	mmc3CHRBankSize = 1024
)

// Info carries everything a mapper constructor needs out of a parsed
// iNES header plus the raw PRG/CHR image bytes.
type Info struct {
	MapperID   uint8
	PRG        []uint8
	CHR        []uint8 // empty means the board uses CHR-RAM
	PRGRAMBanks int    // 8 KiB units; 0 means "use the mapper's default"
	Battery    bool
	Mirroring  ppu.MirrorMode
}

// Cartridge is the capability set every mapper variant satisfies: CPU-side
// and PPU-side read/write, an IRQ-line poll, and an optional
// battery-backed-RAM accessor pair gated by SupportsSaveStates. Dispatch
// is exactly one level deep — the console holds a Cartridge interface
// value and never knows which concrete mapper backs it.
type Cartridge interface {
	// CPURead/CPUWrite serve addr in [0x4020,0xFFFF].
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)

	// PPURead/PPUWrite serve pattern-table addr in [0x0000,0x1FFF]; the
	// PPU owns nametable and palette RAM itself and only ever calls
	// through for CHR space (see DESIGN.md).
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)

	// Mirroring reports how the PPU's nametable RAM should be mapped.
	Mirroring() ppu.MirrorMode

	// IRQ reports (and, per mapper, clears) whether the mapper currently
	// holds the shared IRQ line asserted.
	IRQ() bool

	SupportsSaveStates() bool
	BatteryRAM() []uint8
	SetBatteryRAM(data []uint8)
}

// UnsupportedMapperError is returned by Load when the iNES header names a
// mapper ID this emulator core does not implement. There is no silent
// fallback: an unrecognized mapper is a load-time failure, not a runtime
// one.
type UnsupportedMapperError struct {
	ID uint8
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("mappers: mapper id %d is not implemented", e.ID)
}

// Load constructs the Cartridge named by info.MapperID.
func Load(info Info) (Cartridge, error) {
	switch info.MapperID {
	case 0:
		return newNROM(info), nil
	case 1:
		return newMMC1(info), nil
	case 2:
		return newUxROM(info), nil
	case 3:
		return newCNROM(info), nil
	case 4:
		return newMMC3(info), nil
	default:
		return nil, &UnsupportedMapperError{ID: info.MapperID}
	}
}
