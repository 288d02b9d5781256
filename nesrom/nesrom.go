package nesrom

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bdwalton/gintendo/ppu"
	"github.com/pkg/errors"
)

type PlayChoicePROM struct {
	Data       [16]byte
	CounterOut [16]byte
}

type ROM struct {
	path      string
	h         *header
	trainer   []byte          // if present
	prg       []byte          // 16384 * x bytes; x from header
	chr       []byte          // 8192 * y bytes; y from header
	pcInstRom []byte          // if present
	pcPROM    *PlayChoicePROM // if present; often missing - see PC10 ROM-Images
}

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32
)

// FileNotFoundError wraps the OS-level failure to open a ROM path.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("nesrom: %s: %s", e.Path, e.Err)
}
func (e *FileNotFoundError) Unwrap() error { return e.Err }

// FileInvalidError reports a ROM whose header fails the "NES\x1A" magic
// check, so it is not an iNES image at all.
type FileInvalidError struct {
	Path string
}

func (e *FileInvalidError) Error() string {
	return fmt.Sprintf("nesrom: %s: missing iNES magic bytes", e.Path)
}

// FileCorruptedError reports a ROM whose declared PRG/CHR/trainer
// lengths don't match the bytes actually present in the file.
type FileCorruptedError struct {
	Path string
	Err  error
}

func (e *FileCorruptedError) Error() string {
	return fmt.Sprintf("nesrom: %s: corrupted: %s", e.Path, e.Err)
}
func (e *FileCorruptedError) Unwrap() error { return e.Err }

func New(path string) (*ROM, error) {
	rf, err := os.Open(path)
	if err != nil {
		return nil, &FileNotFoundError{Path: path, Err: errors.Wrap(err, "open")}
	}
	defer rf.Close()

	hbytes := make([]byte, 16)
	if _, err := io.ReadFull(rf, hbytes); err != nil {
		return nil, &FileCorruptedError{Path: path, Err: errors.Wrap(err, "reading header")}
	}

	h := parseHeader(hbytes)
	if !h.isINesFormat() {
		return nil, &FileInvalidError{Path: path}
	}

	r := &ROM{path: path, h: h}

	if h.hasTrainer() {
		r.trainer = make([]byte, TRAINER_SIZE)
		if _, err := io.ReadFull(rf, r.trainer); err != nil {
			return nil, &FileCorruptedError{Path: path, Err: errors.Wrap(err, "reading trainer data")}
		}
	}

	s := PRG_BLOCK_SIZE * int(h.prgSize)
	r.prg = make([]byte, s)
	if _, err := io.ReadFull(rf, r.prg); err != nil {
		return nil, &FileCorruptedError{Path: path, Err: errors.Wrapf(err, "reading %d bytes of PRG ROM", s)}
	}

	s = CHR_BLOCK_SIZE * int(h.chrSize)
	r.chr = make([]byte, s)
	if _, err := io.ReadFull(rf, r.chr); err != nil {
		return nil, &FileCorruptedError{Path: path, Err: errors.Wrapf(err, "reading %d bytes of CHR ROM", s)}
	}

	if h.hasPlayChoice() {
		r.pcInstRom = make([]byte, PC_INST_SIZE)
		if _, err := io.ReadFull(rf, r.pcInstRom); err != nil {
			return nil, &FileCorruptedError{Path: path, Err: errors.Wrap(err, "reading PlayChoice INST ROM")}
		}

		// Some old ROMs may not carry this; we still treat its
		// absence as corruption since we do the technically
		// correct thing rather than silently guessing.
		pcprom := make([]byte, PC_PROM_SIZE)
		if _, err := io.ReadFull(rf, pcprom); err != nil {
			return nil, &FileCorruptedError{Path: path, Err: errors.Wrap(err, "reading PlayChoice PROM")}
		}
	}

	if n, _ := rf.Read(make([]byte, 1)); n != 0 {
		return nil, &FileCorruptedError{Path: path, Err: errors.New("file is longer than its header declares")}
	}

	return r, nil
}

func (r *ROM) NumPrgBlocks() uint8 {
	return r.h.prgSize
}

func (r *ROM) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", r.h))
	if r.h.hasTrainer() {
		sb.WriteString(fmt.Sprintf("Trainer: %v\n", r.trainer))
	}

	sb.WriteString(fmt.Sprintf("PRG: %d bytes\n", len(r.prg)))
	sb.WriteString(fmt.Sprintf("CHR: %d bytes\n", len(r.chr)))

	return sb.String()
}

func (r *ROM) PrgRead(addr uint16) uint8 {
	return r.prg[addr]
}

func (r *ROM) PrgWrite(addr uint16, val uint8) {
	r.prg[addr] = val
}

func (r *ROM) ChrRead(addr uint16) uint8 {
	return r.chr[addr]
}

func (r *ROM) ChrWrite(addr uint16, val uint8) {
	r.chr[addr] = val
}

func (r *ROM) PRG() []byte { return r.prg }
func (r *ROM) CHR() []byte { return r.chr }

func (r *ROM) MapperNum() uint8 {
	return r.h.mapperNum()
}

func (r *ROM) MirroringMode() ppu.MirrorMode {
	return r.h.mirroringMode()
}

func (r *ROM) HasBattery() bool {
	return r.h.hasBattery()
}

// PRGRAMBanks reports how many 8 KiB PRG-RAM banks the header asks for.
func (r *ROM) PRGRAMBanks() int {
	return r.h.prgRAMBanks()
}
