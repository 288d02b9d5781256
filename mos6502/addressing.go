package mos6502

// addrMode identifies one of the 6502's 13 addressing modes.
type addrMode uint8

const (
	modeImplicit addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

// operandBytes is the number of operand bytes each addressing mode
// consumes after the opcode byte itself.
func operandBytes(m addrMode) uint16 {
	switch m {
	case modeImplicit, modeAccumulator:
		return 0
	case modeZeroPage, modeZeroPageX, modeZeroPageY, modeRelative, modeIndirectX, modeIndirectY, modeImmediate:
		return 1
	default:
		return 2
	}
}

// addrFunc computes the effective address for the instruction currently at
// c.pc (which points at the first operand byte) and reports whether a page
// boundary was crossed while forming it. It does not advance c.pc; the
// caller does that uniformly via operandBytes.
type addrFunc func(c *CPU) (addr uint16, pageCrossed bool)

var addrFuncs = [...]addrFunc{
	modeImplicit:    addrImplicit,
	modeAccumulator: addrAccumulator,
	modeImmediate:   addrImmediate,
	modeZeroPage:    addrZeroPage,
	modeZeroPageX:   addrZeroPageX,
	modeZeroPageY:   addrZeroPageY,
	modeRelative:    addrRelative,
	modeAbsolute:    addrAbsolute,
	modeAbsoluteX:   addrAbsoluteX,
	modeAbsoluteY:   addrAbsoluteY,
	modeIndirect:    addrIndirect,
	modeIndirectX:   addrIndirectX,
	modeIndirectY:   addrIndirectY,
}

func addrImplicit(c *CPU) (uint16, bool) {
	return 0, false
}

func addrAccumulator(c *CPU) (uint16, bool) {
	c.accMode = true
	return 0, false
}

func addrImmediate(c *CPU) (uint16, bool) {
	return c.pc, false
}

func addrZeroPage(c *CPU) (uint16, bool) {
	return uint16(c.Read(c.pc)), false
}

func addrZeroPageX(c *CPU) (uint16, bool) {
	return uint16(c.Read(c.pc) + c.x), false
}

func addrZeroPageY(c *CPU) (uint16, bool) {
	return uint16(c.Read(c.pc) + c.y), false
}

// addrRelative returns the absolute target of a branch displacement;
// branch instructions are responsible for deciding whether to actually
// take it. The page-crossed flag reflects whether the *branch target*
// (not the operand fetch) crosses a page, which BCC et al. use to charge
// the extra cycle only when taken.
func addrRelative(c *CPU) (uint16, bool) {
	disp := int8(c.Read(c.pc))
	base := c.pc + 1
	target := uint16(int32(base) + int32(disp))
	return target, (target & 0xFF00) != (base & 0xFF00)
}

func addrAbsolute(c *CPU) (uint16, bool) {
	return c.read16(c.pc), false
}

func addrAbsoluteX(c *CPU) (uint16, bool) {
	base := c.read16(c.pc)
	addr := base + uint16(c.x)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

func addrAbsoluteY(c *CPU) (uint16, bool) {
	base := c.read16(c.pc)
	addr := base + uint16(c.y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

// addrIndirect reproduces the 6502's JMP ($xxFF) page-wrap bug: the high
// byte of the target is fetched from the start of the same page as the
// low byte, not the next page.
func addrIndirect(c *CPU) (uint16, bool) {
	ptr := c.read16(c.pc)
	lo := uint16(c.Read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.Read(hiAddr))
	return (hi << 8) | lo, false
}

func addrIndirectX(c *CPU) (uint16, bool) {
	zp := c.Read(c.pc) + c.x
	lo := uint16(c.Read(uint16(zp)))
	hi := uint16(c.Read(uint16(zp + 1)))
	return (hi << 8) | lo, false
}

func addrIndirectY(c *CPU) (uint16, bool) {
	zp := c.Read(c.pc)
	lo := uint16(c.Read(uint16(zp)))
	hi := uint16(c.Read(uint16(zp + 1)))
	base := (hi << 8) | lo
	addr := base + uint16(c.y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}
