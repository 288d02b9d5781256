package mos6502

// The opcodes in this file are not part of the documented 6502 instruction
// set, but they are fully deterministic side effects of the way the NMOS
// decode PLA folds unused bit patterns onto real ALU/bus operations. Real
// cartridges (and test ROMs written against real hardware) rely on them.

// execNOPRead performs a NOP's addressing-mode read without discarding the
// bus side effect that a volatile register would exhibit.
func execNOPRead(c *CPU, addr uint16) { c.Read(addr) }

func execSLO(c *CPU, addr uint16) {
	v := c.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.Write(addr, v)
	c.acc |= v
	c.setZN(c.acc)
}

func execRLA(c *CPU, addr uint16) {
	v := c.Read(addr)
	carryIn := uint8(0)
	if c.flagSet(FlagC) {
		carryIn = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.Write(addr, v)
	c.acc &= v
	c.setZN(c.acc)
}

func execSRE(c *CPU, addr uint16) {
	v := c.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.Write(addr, v)
	c.acc ^= v
	c.setZN(c.acc)
}

func execRRA(c *CPU, addr uint16) {
	v := c.Read(addr)
	carryIn := uint8(0)
	if c.flagSet(FlagC) {
		carryIn = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.Write(addr, v)

	a := c.acc
	res16 := uint16(a) + uint16(v)
	if c.flagSet(FlagC) {
		res16++
	}
	c.setOverflowADC(a, v, uint8(res16))
	c.acc = uint8(res16)
	c.setZN(c.acc)
	c.setFlag(FlagC, res16 > 0xFF)
}

func execSAX(c *CPU, addr uint16) { c.Write(addr, c.acc&c.x) }

func execLAX(c *CPU, addr uint16) {
	v := c.Read(addr)
	c.acc = v
	c.x = v
	c.setZN(v)
}

func execDCP(c *CPU, addr uint16) {
	v := c.Read(addr) - 1
	c.Write(addr, v)
	baseCompare(c, c.acc, v)
}

func execISC(c *CPU, addr uint16) {
	v := c.Read(addr) + 1
	c.Write(addr, v)
	borrow := int16(0)
	if !c.flagSet(FlagC) {
		borrow = 1
	}
	res16 := int16(c.acc) - int16(v) - borrow
	c.setOverflowADC(c.acc, ^v, uint8(res16))
	c.acc = uint8(res16)
	c.setZN(c.acc)
	c.setFlag(FlagC, res16 >= 0)
}

func execANC(c *CPU, addr uint16) {
	c.acc &= c.Read(addr)
	c.setZN(c.acc)
	c.setFlag(FlagC, c.acc&0x80 != 0)
}

func execALR(c *CPU, addr uint16) {
	c.acc &= c.Read(addr)
	c.setFlag(FlagC, c.acc&0x01 != 0)
	c.acc >>= 1
	c.setZN(c.acc)
}

// execARR's flag behavior (C from bit 6, V from bit6^bit5 of the rotated
// result) differs from a plain AND-then-ROR and is reproduced as observed on
// real silicon rather than derived from the ROR/ADC primitives.
func execARR(c *CPU, addr uint16) {
	c.acc &= c.Read(addr)
	carryIn := uint8(0)
	if c.flagSet(FlagC) {
		carryIn = 0x80
	}
	c.acc = (c.acc >> 1) | carryIn
	c.setZN(c.acc)
	bit6 := c.acc&0x40 != 0
	bit5 := c.acc&0x20 != 0
	c.setFlag(FlagC, bit6)
	c.setFlag(FlagV, bit6 != bit5)
}

// aneConstant is the "magic" byte ANE/LXA silicon ORs into A before the AND;
// it varies per chip revision and is not architecturally guaranteed. The
// conservative 0xFF makes the result independent of A entirely.
const aneConstant = 0xFF

func execANE(c *CPU, addr uint16) {
	c.acc = (c.acc | aneConstant) & c.x & c.Read(addr)
	c.setZN(c.acc)
}

func execLXA(c *CPU, addr uint16) {
	v := (c.acc | aneConstant) & c.Read(addr)
	c.acc = v
	c.x = v
	c.setZN(v)
}

func execSBX(c *CPU, addr uint16) {
	v := c.Read(addr)
	t := c.acc & c.x
	c.setFlag(FlagC, t >= v)
	c.x = t - v
	c.setZN(c.x)
}

// highByteBugValue reproduces the unstable SHA/SHX/SHY/TAS behavior: the
// stored value is masked against the high byte of one past the effective
// address, a side effect of how the 6502 computes the address's high
// byte on the bus during the write cycle.
func highByteBugValue(addr uint16) uint8 { return uint8((addr + 1) >> 8) }

func execSHA(c *CPU, addr uint16) {
	c.Write(addr, c.acc&c.x&highByteBugValue(addr))
}

func execSHX(c *CPU, addr uint16) {
	c.Write(addr, c.x&highByteBugValue(addr))
}

func execSHY(c *CPU, addr uint16) {
	c.Write(addr, c.y&highByteBugValue(addr))
}

func execTAS(c *CPU, addr uint16) {
	c.sp = c.acc & c.x
	c.Write(addr, c.sp&highByteBugValue(addr))
}

func execLAS(c *CPU, addr uint16) {
	v := c.Read(addr) & c.sp
	c.acc = v
	c.x = v
	c.sp = v
	c.setZN(v)
}

func defineUndocumented() {
	// SLO
	def(0x03, "SLO", modeIndirectX, 8, false, execSLO)
	def(0x07, "SLO", modeZeroPage, 5, false, execSLO)
	def(0x0F, "SLO", modeAbsolute, 6, false, execSLO)
	def(0x13, "SLO", modeIndirectY, 8, false, execSLO)
	def(0x17, "SLO", modeZeroPageX, 6, false, execSLO)
	def(0x1B, "SLO", modeAbsoluteY, 7, false, execSLO)
	def(0x1F, "SLO", modeAbsoluteX, 7, false, execSLO)

	// RLA
	def(0x23, "RLA", modeIndirectX, 8, false, execRLA)
	def(0x27, "RLA", modeZeroPage, 5, false, execRLA)
	def(0x2F, "RLA", modeAbsolute, 6, false, execRLA)
	def(0x33, "RLA", modeIndirectY, 8, false, execRLA)
	def(0x37, "RLA", modeZeroPageX, 6, false, execRLA)
	def(0x3B, "RLA", modeAbsoluteY, 7, false, execRLA)
	def(0x3F, "RLA", modeAbsoluteX, 7, false, execRLA)

	// SRE
	def(0x43, "SRE", modeIndirectX, 8, false, execSRE)
	def(0x47, "SRE", modeZeroPage, 5, false, execSRE)
	def(0x4F, "SRE", modeAbsolute, 6, false, execSRE)
	def(0x53, "SRE", modeIndirectY, 8, false, execSRE)
	def(0x57, "SRE", modeZeroPageX, 6, false, execSRE)
	def(0x5B, "SRE", modeAbsoluteY, 7, false, execSRE)
	def(0x5F, "SRE", modeAbsoluteX, 7, false, execSRE)

	// RRA
	def(0x63, "RRA", modeIndirectX, 8, false, execRRA)
	def(0x67, "RRA", modeZeroPage, 5, false, execRRA)
	def(0x6F, "RRA", modeAbsolute, 6, false, execRRA)
	def(0x73, "RRA", modeIndirectY, 8, false, execRRA)
	def(0x77, "RRA", modeZeroPageX, 6, false, execRRA)
	def(0x7B, "RRA", modeAbsoluteY, 7, false, execRRA)
	def(0x7F, "RRA", modeAbsoluteX, 7, false, execRRA)

	// SAX
	def(0x83, "SAX", modeIndirectX, 6, false, execSAX)
	def(0x87, "SAX", modeZeroPage, 3, false, execSAX)
	def(0x8F, "SAX", modeAbsolute, 4, false, execSAX)
	def(0x97, "SAX", modeZeroPageY, 4, false, execSAX)

	// LAX
	def(0xA3, "LAX", modeIndirectX, 6, false, execLAX)
	def(0xA7, "LAX", modeZeroPage, 3, false, execLAX)
	def(0xAF, "LAX", modeAbsolute, 4, false, execLAX)
	def(0xB3, "LAX", modeIndirectY, 5, true, execLAX)
	def(0xB7, "LAX", modeZeroPageY, 4, false, execLAX)
	def(0xBF, "LAX", modeAbsoluteY, 4, true, execLAX)

	// DCP
	def(0xC3, "DCP", modeIndirectX, 8, false, execDCP)
	def(0xC7, "DCP", modeZeroPage, 5, false, execDCP)
	def(0xCF, "DCP", modeAbsolute, 6, false, execDCP)
	def(0xD3, "DCP", modeIndirectY, 8, false, execDCP)
	def(0xD7, "DCP", modeZeroPageX, 6, false, execDCP)
	def(0xDB, "DCP", modeAbsoluteY, 7, false, execDCP)
	def(0xDF, "DCP", modeAbsoluteX, 7, false, execDCP)

	// ISC
	def(0xE3, "ISC", modeIndirectX, 8, false, execISC)
	def(0xE7, "ISC", modeZeroPage, 5, false, execISC)
	def(0xEF, "ISC", modeAbsolute, 6, false, execISC)
	def(0xF3, "ISC", modeIndirectY, 8, false, execISC)
	def(0xF7, "ISC", modeZeroPageX, 6, false, execISC)
	def(0xFB, "ISC", modeAbsoluteY, 7, false, execISC)
	def(0xFF, "ISC", modeAbsoluteX, 7, false, execISC)

	// immediate-only single-byte ALU quirks
	def(0x0B, "ANC", modeImmediate, 2, false, execANC)
	def(0x2B, "ANC", modeImmediate, 2, false, execANC)
	def(0x4B, "ALR", modeImmediate, 2, false, execALR)
	def(0x6B, "ARR", modeImmediate, 2, false, execARR)
	def(0x8B, "ANE", modeImmediate, 2, false, execANE)
	def(0xAB, "LXA", modeImmediate, 2, false, execLXA)
	def(0xCB, "SBX", modeImmediate, 2, false, execSBX)
	def(0xEB, "SBC", modeImmediate, 2, false, execSBC)

	// high-byte-bug stores
	def(0x93, "SHA", modeIndirectY, 6, false, execSHA)
	def(0x9F, "SHA", modeAbsoluteY, 5, false, execSHA)
	def(0x9E, "SHX", modeAbsoluteY, 5, false, execSHX)
	def(0x9C, "SHY", modeAbsoluteX, 5, false, execSHY)
	def(0x9B, "TAS", modeAbsoluteY, 5, false, execTAS)
	def(0xBB, "LAS", modeAbsoluteY, 4, true, execLAS)

	// illegal NOPs
	for _, b := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(b, "NOP", modeImplicit, 2, false, execNOP)
	}
	for _, b := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		def(b, "NOP", modeImmediate, 2, false, execNOPRead)
	}
	for _, b := range []uint8{0x04, 0x44, 0x64} {
		def(b, "NOP", modeZeroPage, 3, false, execNOPRead)
	}
	for _, b := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		def(b, "NOP", modeZeroPageX, 4, false, execNOPRead)
	}
	def(0x0C, "NOP", modeAbsolute, 4, false, execNOPRead)
	for _, b := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		def(b, "NOP", modeAbsoluteX, 4, true, execNOPRead)
	}
}
