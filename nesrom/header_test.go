package nesrom

import (
	"reflect"
	"testing"

	"github.com/bdwalton/gintendo/ppu"
)

func TestParseHeader(t *testing.T) {
	cases := []struct {
		bytes      []byte
		wantHeader *header
	}{
		{
			[]byte{0x4e, 0x45, 0x53, 0x1a, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			&header{constant: "NES\x1a", prgSize: 2, chrSize: 1, flags6: 1, flags7: 0, flags8: 0, flags9: 0, flags10: 0, unused: []byte{0, 0, 0, 0, 0}},
		},
	}
	for i, tc := range cases {
		if h := parseHeader(tc.bytes); !reflect.DeepEqual(h, tc.wantHeader) {
			t.Errorf("%d: Got %q, wanted %q", i, h, tc.wantHeader)
		}
	}
}

func TestNES2Format(t *testing.T) {
	h := &header{}
	cases := []struct {
		constant           string
		flags7             uint8
		wantINES, wantNES2 bool
	}{
		{"NES\x1A", 0x08, true, true},
		{"NES\x1A", 0x0C, true, false},
		{"BOB\x1A", 0x10, false, false},
		{"BOB\x1A", 0x04, false, false},
		{"BOB\x1A", 0x08, false, false},
	}

	for i, tc := range cases {
		h.constant = tc.constant
		h.flags7 = tc.flags7
		if h.isINesFormat() != tc.wantINES || h.isNES2Format() != tc.wantNES2 {
			t.Errorf("%d: ines = %t want %t; nes2 = %t, want %t", i, h.isINesFormat(), tc.wantINES, h.isNES2Format(), tc.wantNES2)
		}
	}
}

func TestMapperNum(t *testing.T) {
	cases := []struct {
		flags6, flags7 uint8
		unused         []byte
		want           uint8
	}{
		{0xEF, 0xF0, []byte{0, 0, 0, 0, 0}, 0xFE}, // Not NES2, last 4 bytes 0
		{0xFF, 0xE0, []byte{0, 0, 0, 0, 0}, 0xEF}, // Not NES2, last 4 bytes 0
		{0xC0, 0xB0, []byte{0, 1, 1, 1, 0}, 0x0C}, // Not NES2, last 4 bytes not 0
		{0x1F, 0x20, []byte{0, 1, 1, 1, 0}, 0x01}, // Not NES2, last 4 bytes not 0
		{0xFF, 0xF8, []byte{0, 0, 1, 1, 0}, 0xFF}, // NES2, last 4 bytes not 0
		{0xAF, 0xD8, []byte{0, 0, 0, 0, 0}, 0xDA}, // NES2, last 4 bytes 0
	}

	for i, tc := range cases {
		h := &header{constant: "NES\x1A", flags6: tc.flags6, flags7: tc.flags7, unused: tc.unused}
		if got := h.mapperNum(); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
	}
}

func TestHasTrainer(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8
		want   bool
	}{
		{0xFF, true},
		{0x04, true},
		{0x0C, true},
		{0x0A, false},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.hasTrainer(); got != tc.want {
			t.Errorf("%d: Got %t, want %t", i, got, tc.want)
		}
	}
}

func TestHasPlayChoice10(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags7 uint8
		want   bool
	}{
		{0xFF, true},
		{0x02, true},
		{0x0D, false},
		{0x01, false},
	}

	for i, tc := range cases {
		h.flags7 = tc.flags7
		if got := h.hasPlayChoice(); got != tc.want {
			t.Errorf("%d: Got %t, want %t", i, got, tc.want)
		}
	}
}

func TestMirroringMode(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8
		want   ppu.MirrorMode
	}{
		{0xFF, ppu.MirrorFourScreen},
		{0x00, ppu.MirrorHorizontal},
		{0x01, ppu.MirrorVertical},
		{0x08, ppu.MirrorFourScreen},
		{0x09, ppu.MirrorFourScreen},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.mirroringMode(); got != tc.want {
			t.Errorf("%d: Got %d, want %d.", i, got, tc.want)
		}
	}
}

func TestBatteryBackedSRAM(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6, flags8 uint8
		want           bool
		wantBanks      int
	}{
		{0, 0, false, 1},
		{0, 16, false, 16},
		{batteryBackedSRAM, 0, true, 1},
		{batteryBackedSRAM, 1, true, 1},
		{batteryBackedSRAM, 16, true, 16},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		h.flags8 = tc.flags8
		if got, banks := h.hasBattery(), h.prgRAMBanks(); got != tc.want || banks != tc.wantBanks {
			t.Errorf("%d: Got %t, wanted %t, banks = %d, wanted %d", i, got, tc.want, banks, tc.wantBanks)
		}
	}
}
