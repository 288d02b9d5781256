package ppu

import "testing"

func TestLoopyCoarseXWrap(t *testing.T) {
	l := &loopy{data: 0x001F} // coarse X maxed, nametable X clear
	l.incX()
	if l.coarseX() != 0 {
		t.Errorf("coarse X = %d, want 0", l.coarseX())
	}
	if l.nametableX() != 1 {
		t.Error("nametable X should toggle on coarse X wrap")
	}
}

func TestLoopyCoarseYWrapAtThirty(t *testing.T) {
	l := &loopy{}
	l.setCoarseY(29)
	l.data |= 0x7000 // fine Y = 7, so incY rolls coarse Y over
	l.incY()
	if l.coarseY() != 0 {
		t.Errorf("coarse Y = %d, want 0", l.coarseY())
	}
	if l.nametableY() != 1 {
		t.Error("nametable Y should toggle when coarse Y wraps from 29")
	}
}

func TestLoopyCoarseYWrapAtThirtyOneNoToggle(t *testing.T) {
	l := &loopy{}
	l.setCoarseY(31)
	l.data |= 0x7000
	l.incY()
	if l.coarseY() != 0 {
		t.Errorf("coarse Y = %d, want 0", l.coarseY())
	}
	if l.nametableY() != 0 {
		t.Error("nametable Y must not toggle when coarse Y wraps from 31")
	}
}

func TestLoopyIncYFineYOnly(t *testing.T) {
	l := &loopy{}
	l.incY()
	if l.fineY() != 1 {
		t.Errorf("fine Y = %d, want 1", l.fineY())
	}
}

func TestLoopyTransferXY(t *testing.T) {
	v := &loopy{}
	tr := &loopy{data: 0x7FFF}
	v.transferX(tr)
	if v.coarseX() != 0x1F || v.nametableX() != 1 {
		t.Error("transferX should copy coarse X and nametable X from t")
	}
	if v.coarseY() != 0 {
		t.Error("transferX must not touch coarse Y")
	}

	v2 := &loopy{}
	v2.transferY(tr)
	if v2.coarseY() != 0x1F || v2.fineY() != 7 || v2.nametableY() != 1 {
		t.Error("transferY should copy coarse Y, fine Y, and nametable Y from t")
	}
	if v2.coarseX() != 0 {
		t.Error("transferY must not touch coarse X")
	}
}
