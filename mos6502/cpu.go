// Package mos6502 implements a cycle-counting interpreter for the NES's
// 6502-family CPU core, including the documented instruction set and the
// illegal opcodes real RP2A03 silicon exhibits.
package mos6502

import (
	"github.com/golang/glog"
)

// MEM_SIZE is the size of the 6502's full 16-bit address space.
const MEM_SIZE = 1 << 16

// Bus is the CPU-side memory surface. The console wires a concrete bus
// implementation (internal RAM, PPU registers, mapper, controllers) in;
// the CPU itself never knows about any of those concerns.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Status flag bit indices.
const (
	FlagC uint8 = 1 << 0 // carry
	FlagZ uint8 = 1 << 1 // zero
	FlagI uint8 = 1 << 2 // interrupt disable
	FlagD uint8 = 1 << 3 // decimal (unused on the NES's RP2A03, but the bit still exists)
	FlagB uint8 = 1 << 4 // break
	FlagU uint8 = 1 << 5 // unused, always reads 1
	FlagV uint8 = 1 << 6 // overflow
	FlagN uint8 = 1 << 7 // negative
)

// InterruptSource distinguishes the four ways the CPU enters its
// interrupt-service sequence.
type InterruptSource uint8

const (
	IntNone InterruptSource = iota
	IntReset
	IntNMI
	IntIRQ
	IntBRK
)

const stackPage = 0x0100

// CPU is a 6502 core. It owns no memory of its own; every read/write goes
// through the Bus it was constructed with.
type CPU struct {
	pc             uint16
	sp             uint8
	acc, x, y      uint8
	status         uint8
	bus            Bus
	cycles         uint64 // total cycles executed since power-on; used for DMA stall parity
	skipCycles     int    // cycles still owed for the instruction in flight
	irqPending     bool
	irqSource      InterruptSource
	pageCrossed    bool // set by the addressing-mode helper for the instruction in flight
	accMode        bool // set when the current instruction's operand is the accumulator
}

// New constructs a CPU wired to bus. Call Reset (or assert InterruptSource
// Reset via Step) before running it; a freshly constructed CPU is not
// powered on.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

func (c *CPU) Read(addr uint16) uint8        { return c.bus.Read(addr) }
func (c *CPU) Write(addr uint16, val uint8)  { c.bus.Write(addr, val) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.Read(addr))
	hi := uint16(c.Read(addr + 1))
	return (hi << 8) | lo
}

// PC, SP, A, X, Y, P expose CPU register state read-only, primarily for the
// debugger REPL and tests.
func (c *CPU) PC() uint16   { return c.pc }
func (c *CPU) SP() uint8    { return c.sp }
func (c *CPU) A() uint8     { return c.acc }
func (c *CPU) X() uint8     { return c.x }
func (c *CPU) Y() uint8     { return c.y }
func (c *CPU) P() uint8     { return c.status }
func (c *CPU) Cycles() uint64 { return c.cycles }

func (c *CPU) flagSet(f uint8) bool { return c.status&f != 0 }

func (c *CPU) setFlag(f uint8, on bool) {
	if on {
		c.status |= f
	} else {
		c.status &^= f
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) pushByte(v uint8) {
	c.Write(stackPage|uint16(c.sp), v)
	c.sp--
}

func (c *CPU) popByte() uint8 {
	c.sp++
	return c.Read(stackPage | uint16(c.sp))
}

func (c *CPU) pushAddr(v uint16) {
	c.pushByte(uint8(v >> 8))
	c.pushByte(uint8(v & 0xFF))
}

func (c *CPU) popAddr() uint16 {
	lo := uint16(c.popByte())
	hi := uint16(c.popByte())
	return (hi << 8) | lo
}

// AssertInterrupt requests that src be serviced once the in-flight
// instruction retires. A higher-priority request already pending is not
// overwritten by a lower-priority one in the same cycle; callers are
// expected to assert at most one source per step per the console's fixed
// PPU-PPU-PPU-CPU cadence.
func (c *CPU) AssertInterrupt(src InterruptSource) {
	// Sources earlier in the InterruptSource list take priority.
	if c.irqPending && c.irqSource < src {
		return
	}
	c.irqPending = true
	c.irqSource = src
}

// AddDMACycles charges the CPU for an OAM-DMA stall: 513 cycles, or 514 if
// the CPU's own running cycle counter is currently odd.
func (c *CPU) AddDMACycles() {
	extra := 513
	if c.cycles%2 == 1 {
		extra = 514
	}
	c.skipCycles += extra
}

// Reset re-initializes the CPU to its power-on state and loads PC from the
// reset vector. It does not push anything to the stack. The reset
// sequence costs 7 cycles, which the following Step calls spend.
func (c *CPU) Reset() {
	c.sp = 0xFD
	c.status = FlagI | FlagU
	c.acc, c.x, c.y = 0, 0, 0
	c.pc = c.read16(0xFFFC)
	c.skipCycles = 7
	c.irqPending = false
	c.irqSource = IntNone
}

func (c *CPU) serviceInterrupt(src InterruptSource) {
	switch src {
	case IntReset:
		c.Reset() // charges its own 7 cycles
		return
	case IntNMI:
		c.pushAddr(c.pc)
		c.pushByte((c.status | FlagU) &^ FlagB)
		c.setFlag(FlagI, true)
		c.pc = c.read16(0xFFFA)
	case IntIRQ:
		c.pushAddr(c.pc)
		c.pushByte((c.status | FlagU) &^ FlagB)
		c.setFlag(FlagI, true)
		c.pc = c.read16(0xFFFE)
	case IntBRK:
		c.pushAddr(c.pc)
		c.pushByte(c.status | FlagU | FlagB)
		c.setFlag(FlagI, true)
		c.pc = c.read16(0xFFFE)
	}

	c.skipCycles += 7
}

// Step advances the CPU by one cycle of wall-clock time. Most cycles are
// spent waiting out skipCycles from the previous instruction; when that
// counter reaches zero a new instruction (or pending interrupt) is
// dispatched and skipCycles is set to its cost minus the one cycle this
// call already accounts for.
func (c *CPU) Step() {
	if c.skipCycles > 0 {
		c.skipCycles--
		c.cycles++
		return
	}

	if c.irqPending {
		src := c.irqSource
		c.irqPending = false
		c.irqSource = IntNone
		c.serviceInterrupt(src)
		c.skipCycles--
		c.cycles++
		return
	}

	opByte := c.Read(c.pc)
	op := opcodeTable[opByte]
	if op.name == "" {
		glog.Warningf("mos6502: unassigned opcode 0x%02X at 0x%04X, treating as NOP", opByte, c.pc)
		op = opcode{name: "NOP", mode: modeImplicit, cycles: 2, exec: execNOP}
	}

	c.pc++
	c.pageCrossed = false
	c.accMode = false

	addr, crossed := addrFuncs[op.mode](c)
	c.pageCrossed = crossed
	c.pc += operandBytes(op.mode)

	op.exec(c, addr)

	cycles := op.cycles
	if op.pageCrossPenalty && c.pageCrossed {
		cycles++
	}

	c.skipCycles += cycles - 1
	c.cycles++
}
