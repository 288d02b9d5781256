package ppu

// loopy models one of the PPU's two "loopy" scroll registers (v, the
// current VRAM address, and t, the temporary address latched by writes to
// PPUSCROLL/PPUADDR before a frame's first visible scanline adopts it).
//
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 { return l.data & 0x001F }

func (l *loopy) setCoarseX(n uint16) { l.data = (l.data & 0xFFE0) | (n & 0x1F) }

func (l *loopy) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopy) setCoarseY(n uint16) { l.data = (l.data & 0xFC1F) | ((n & 0x1F) << 5) }

func (l *loopy) nametableX() uint16 { return (l.data & 0x0400) >> 10 }

func (l *loopy) nametableY() uint16 { return (l.data & 0x0800) >> 11 }

func (l *loopy) fineY() uint16 { return (l.data & 0x7000) >> 12 }

func (l *loopy) setFineY(n uint16) { l.data = (l.data & 0x8FFF) | ((n & 0x7) << 12) }

// incX implements the coarse-X scroll increment used on every background
// tile fetch: wrapping from 31 back to 0 flips the horizontal nametable
// bit so the fetch continues into the neighboring nametable.
func (l *loopy) incX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
	} else {
		l.data++
	}
}

// incY implements the dot-256 vertical scroll increment. Coarse Y wraps at
// 30 (toggling the vertical nametable bit) since nametables hold only 30
// rows of tiles; a coarse Y of 31 (reachable only by software poking the
// register directly) wraps silently without toggling, reproducing the
// documented hardware quirk.
func (l *loopy) incY() {
	if l.fineY() < 7 {
		l.data += 0x1000
		return
	}
	l.data &^= 0x7000
	switch cy := l.coarseY(); cy {
	case 29:
		l.setCoarseY(0)
		l.data ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(cy + 1)
	}
}

// transferX copies the horizontal scroll position (coarse X and the
// horizontal nametable bit) from t into v, performed at dot 257 of every
// scanline.
func (v *loopy) transferX(t *loopy) {
	const mask = 0x041F
	v.data = (v.data &^ mask) | (t.data & mask)
}

// transferY copies the vertical scroll position (coarse Y, fine Y, and the
// vertical nametable bit) from t into v, performed at dots 280-304 of the
// pre-render scanline.
func (v *loopy) transferY(t *loopy) {
	const mask = 0x7BE0
	v.data = (v.data &^ mask) | (t.data & mask)
}

// tileAddr is the nametable byte address v currently points at.
func (l *loopy) tileAddr() uint16 { return 0x2000 | (l.data & 0x0FFF) }

// attrAddr is the attribute-table byte address for v's current tile.
func (l *loopy) attrAddr() uint16 {
	return 0x23C0 | (l.data & 0x0C00) | ((l.coarseY() >> 2) << 3) | (l.coarseX() >> 2)
}
