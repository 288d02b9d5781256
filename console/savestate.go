package console

import (
	"os"

	"github.com/pkg/errors"
)

// saveStateMagic prefixes every save-state file; it lets LoadSaveState
// reject a file that parses as bytes but isn't one of ours.
var saveStateMagic = [4]byte{'R', 'N', 'E', 'S'}

// SaveState writes the cartridge's battery-backed PRG-RAM to path,
// prefixed with the "RNES" magic. It is a no-op for cartridges that
// don't support save states (e.g. CNROM, UxROM).
func (b *Bus) SaveState(path string) error {
	if !b.cart.SupportsSaveStates() {
		return nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening save-state file %q", path)
	}
	defer f.Close()

	if _, err := f.Write(saveStateMagic[:]); err != nil {
		return errors.Wrap(err, "writing save-state magic")
	}
	if _, err := f.Write(b.cart.BatteryRAM()); err != nil {
		return errors.Wrap(err, "writing battery RAM")
	}
	return nil
}

// LoadSaveState restores battery-backed PRG-RAM from path. A missing
// file is not an error: a cartridge being run for the first time simply
// has no prior save state.
func (b *Bus) LoadSaveState(path string) error {
	if !b.cart.SupportsSaveStates() {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading save-state file %q", path)
	}

	if len(data) < len(saveStateMagic) || [4]byte(data[:4]) != saveStateMagic {
		return errors.Errorf("%q is not a gintendo save-state file", path)
	}

	b.cart.SetBatteryRAM(data[4:])
	return nil
}
