package mappers

import "testing"

func TestBankedMemoryReadWrite(t *testing.T) {
	m := NewBankedMemory(4, 2)
	m.Write(0, 0, 0x11)
	m.Write(1, 0, 0x22)
	if got := m.Read(0, 0); got != 0x11 {
		t.Errorf("bank 0 addr 0 = %#02x, want 0x11", got)
	}
	if got := m.Read(1, 0); got != 0x22 {
		t.Errorf("bank 1 addr 0 = %#02x, want 0x22", got)
	}
	// addr is reduced modulo bank size
	if got := m.Read(0, 4); got != 0x11 {
		t.Errorf("bank 0 addr 4 (wrapped) = %#02x, want 0x11", got)
	}
}

func TestBankedMemoryOutOfRangeBankPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range bank index")
		}
	}()
	m := NewBankedMemory(4, 2)
	m.Read(5, 0)
}

func TestBankedMemoryEmptyReadsZeroWritesNoop(t *testing.T) {
	m := &BankedMemory{} // zero value: no backing storage
	if got := m.Read(0, 0); got != 0 {
		t.Errorf("empty store read = %#02x, want 0", got)
	}
	m.Write(0, 0, 0xFF) // must not panic
}

func TestBankedMemoryReload(t *testing.T) {
	m := NewBankedMemory(2, 1)
	m.Reload([]uint8{0xAA, 0xBB})
	if got := m.Read(0, 0); got != 0xAA {
		t.Errorf("after reload, addr 0 = %#02x, want 0xAA", got)
	}
	if got := m.Read(0, 1); got != 0xBB {
		t.Errorf("after reload, addr 1 = %#02x, want 0xBB", got)
	}
}
