package mos6502

// execFunc performs one instruction's effect given its precomputed
// effective address (meaningless for Implicit/Accumulator-mode ops, which
// read cpu.accMode instead).
type execFunc func(c *CPU, addr uint16)

type opcode struct {
	name             string
	mode             addrMode
	cycles           int
	pageCrossPenalty bool // charge +1 when the addressing mode crossed a page
	exec             execFunc
}

// operand returns the 8-bit value this instruction operates on: the
// accumulator for Accumulator-mode instructions, otherwise the byte at
// addr.
func (c *CPU) operand(addr uint16) uint8 {
	if c.accMode {
		return c.acc
	}
	return c.Read(addr)
}

// storeResult writes v back to wherever operand() read it from.
func (c *CPU) storeResult(addr uint16, v uint8) {
	if c.accMode {
		c.acc = v
	} else {
		c.Write(addr, v)
	}
}

// setOverflowADC implements ADC's V-flag rule: set when the operands share a
// sign but the result's sign differs from both.
func (c *CPU) setOverflowADC(a, op, res uint8) {
	c.setFlag(FlagV, (^(a^op))&(a^res)&0x80 != 0)
}

func execNOP(c *CPU, addr uint16) {}

// --- load/store ---

func execLDA(c *CPU, addr uint16) {
	c.acc = c.Read(addr)
	c.setZN(c.acc)
}

func execLDX(c *CPU, addr uint16) {
	c.x = c.Read(addr)
	c.setZN(c.x)
}

func execLDY(c *CPU, addr uint16) {
	c.y = c.Read(addr)
	c.setZN(c.y)
}

func execSTA(c *CPU, addr uint16) { c.Write(addr, c.acc) }
func execSTX(c *CPU, addr uint16) { c.Write(addr, c.x) }
func execSTY(c *CPU, addr uint16) { c.Write(addr, c.y) }

// --- transfers ---

func execTAX(c *CPU, addr uint16) { c.x = c.acc; c.setZN(c.x) }
func execTAY(c *CPU, addr uint16) { c.y = c.acc; c.setZN(c.y) }
func execTXA(c *CPU, addr uint16) { c.acc = c.x; c.setZN(c.acc) }
func execTYA(c *CPU, addr uint16) { c.acc = c.y; c.setZN(c.acc) }
func execTSX(c *CPU, addr uint16) { c.x = c.sp; c.setZN(c.x) }
func execTXS(c *CPU, addr uint16) { c.sp = c.x }

// --- stack ---

func execPHA(c *CPU, addr uint16) { c.pushByte(c.acc) }
func execPHP(c *CPU, addr uint16) { c.pushByte(c.status | FlagU | FlagB) }

func execPLA(c *CPU, addr uint16) {
	c.acc = c.popByte()
	c.setZN(c.acc)
}

func execPLP(c *CPU, addr uint16) {
	c.status = (c.popByte() &^ FlagB) | FlagU
}

// --- arithmetic ---

func execADC(c *CPU, addr uint16) {
	op := c.Read(addr)
	res16 := uint16(c.acc) + uint16(op)
	if c.flagSet(FlagC) {
		res16++
	}
	c.setOverflowADC(c.acc, op, uint8(res16))
	c.acc = uint8(res16)
	c.setZN(c.acc)
	c.setFlag(FlagC, res16 > 0xFF)
}

func execSBC(c *CPU, addr uint16) {
	op := c.Read(addr)
	borrow := int16(0)
	if !c.flagSet(FlagC) {
		borrow = 1
	}
	res16 := int16(c.acc) - int16(op) - borrow
	c.setOverflowADC(c.acc, ^op, uint8(res16))
	c.acc = uint8(res16)
	c.setZN(c.acc)
	c.setFlag(FlagC, res16 >= 0)
}

func baseCompare(c *CPU, a, b uint8) {
	res := a - b
	c.setFlag(FlagC, a >= b)
	c.setZN(res)
}

func execCMP(c *CPU, addr uint16) { baseCompare(c, c.acc, c.Read(addr)) }
func execCPX(c *CPU, addr uint16) { baseCompare(c, c.x, c.Read(addr)) }
func execCPY(c *CPU, addr uint16) { baseCompare(c, c.y, c.Read(addr)) }

func execINC(c *CPU, addr uint16) {
	v := c.Read(addr) + 1
	c.Write(addr, v)
	c.setZN(v)
}

func execINX(c *CPU, addr uint16) { c.x++; c.setZN(c.x) }
func execINY(c *CPU, addr uint16) { c.y++; c.setZN(c.y) }

func execDEC(c *CPU, addr uint16) {
	v := c.Read(addr) - 1
	c.Write(addr, v)
	c.setZN(v)
}

func execDEX(c *CPU, addr uint16) { c.x--; c.setZN(c.x) }
func execDEY(c *CPU, addr uint16) { c.y--; c.setZN(c.y) }

// --- bitwise ---

func execAND(c *CPU, addr uint16) { c.acc &= c.Read(addr); c.setZN(c.acc) }
func execORA(c *CPU, addr uint16) { c.acc |= c.Read(addr); c.setZN(c.acc) }
func execEOR(c *CPU, addr uint16) { c.acc ^= c.Read(addr); c.setZN(c.acc) }

func execBIT(c *CPU, addr uint16) {
	op := c.Read(addr)
	c.setFlag(FlagZ, c.acc&op == 0)
	c.setFlag(FlagN, op&0x80 != 0)
	c.setFlag(FlagV, op&0x40 != 0)
}

func execASL(c *CPU, addr uint16) {
	v := c.operand(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.storeResult(addr, v)
	c.setZN(v)
}

func execLSR(c *CPU, addr uint16) {
	v := c.operand(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.storeResult(addr, v)
	c.setZN(v)
}

func execROL(c *CPU, addr uint16) {
	v := c.operand(addr)
	carryIn := uint8(0)
	if c.flagSet(FlagC) {
		carryIn = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.storeResult(addr, v)
	c.setZN(v)
}

func execROR(c *CPU, addr uint16) {
	v := c.operand(addr)
	carryIn := uint8(0)
	if c.flagSet(FlagC) {
		carryIn = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.storeResult(addr, v)
	c.setZN(v)
}

// --- jumps/calls ---

func execJMP(c *CPU, addr uint16) { c.pc = addr }

func execJSR(c *CPU, addr uint16) {
	c.pushAddr(c.pc - 1)
	c.pc = addr
}

func execRTS(c *CPU, addr uint16) { c.pc = c.popAddr() + 1 }

func execRTI(c *CPU, addr uint16) {
	c.status = (c.popByte() &^ FlagB) | FlagU
	c.pc = c.popAddr()
}

func execBRK(c *CPU, addr uint16) {
	c.pc++ // BRK leaves a padding byte; the pushed PC points past it
	c.pushAddr(c.pc)
	c.pushByte(c.status | FlagU | FlagB)
	c.setFlag(FlagI, true)
	c.pc = c.read16(0xFFFE)
}

// --- branches ---

func branch(c *CPU, target uint16, crossed, take bool) {
	if !take {
		return
	}
	c.skipCycles++
	if crossed {
		c.skipCycles++
	}
	c.pc = target
}

func execBCC(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, !c.flagSet(FlagC)) }
func execBCS(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, c.flagSet(FlagC)) }
func execBEQ(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, c.flagSet(FlagZ)) }
func execBNE(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, !c.flagSet(FlagZ)) }
func execBMI(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, c.flagSet(FlagN)) }
func execBPL(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, !c.flagSet(FlagN)) }
func execBVC(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, !c.flagSet(FlagV)) }
func execBVS(c *CPU, addr uint16) { branch(c, addr, c.pageCrossed, c.flagSet(FlagV)) }

// --- flags ---

func execCLC(c *CPU, addr uint16) { c.setFlag(FlagC, false) }
func execSEC(c *CPU, addr uint16) { c.setFlag(FlagC, true) }
func execCLI(c *CPU, addr uint16) { c.setFlag(FlagI, false) }
func execSEI(c *CPU, addr uint16) { c.setFlag(FlagI, true) }
func execCLD(c *CPU, addr uint16) { c.setFlag(FlagD, false) }
func execSED(c *CPU, addr uint16) { c.setFlag(FlagD, true) }
func execCLV(c *CPU, addr uint16) { c.setFlag(FlagV, false) }

// opcodeTable is indexed directly by opcode byte. Entries left at the zero
// value (name == "") have no assigned mnemonic on NMOS 6502 silicon; Step
// treats them as a conservative 2-cycle NOP rather than crashing.
var opcodeTable [256]opcode

func def(b uint8, name string, mode addrMode, cycles int, pageCrossPenalty bool, fn execFunc) {
	opcodeTable[b] = opcode{name: name, mode: mode, cycles: cycles, pageCrossPenalty: pageCrossPenalty, exec: fn}
}

func init() {
	// ADC
	def(0x69, "ADC", modeImmediate, 2, false, execADC)
	def(0x65, "ADC", modeZeroPage, 3, false, execADC)
	def(0x75, "ADC", modeZeroPageX, 4, false, execADC)
	def(0x6D, "ADC", modeAbsolute, 4, false, execADC)
	def(0x7D, "ADC", modeAbsoluteX, 4, true, execADC)
	def(0x79, "ADC", modeAbsoluteY, 4, true, execADC)
	def(0x61, "ADC", modeIndirectX, 6, false, execADC)
	def(0x71, "ADC", modeIndirectY, 5, true, execADC)

	// AND
	def(0x29, "AND", modeImmediate, 2, false, execAND)
	def(0x25, "AND", modeZeroPage, 3, false, execAND)
	def(0x35, "AND", modeZeroPageX, 4, false, execAND)
	def(0x2D, "AND", modeAbsolute, 4, false, execAND)
	def(0x3D, "AND", modeAbsoluteX, 4, true, execAND)
	def(0x39, "AND", modeAbsoluteY, 4, true, execAND)
	def(0x21, "AND", modeIndirectX, 6, false, execAND)
	def(0x31, "AND", modeIndirectY, 5, true, execAND)

	// ASL
	def(0x0A, "ASL", modeAccumulator, 2, false, execASL)
	def(0x06, "ASL", modeZeroPage, 5, false, execASL)
	def(0x16, "ASL", modeZeroPageX, 6, false, execASL)
	def(0x0E, "ASL", modeAbsolute, 6, false, execASL)
	def(0x1E, "ASL", modeAbsoluteX, 7, false, execASL)

	// branches
	def(0x90, "BCC", modeRelative, 2, false, execBCC)
	def(0xB0, "BCS", modeRelative, 2, false, execBCS)
	def(0xF0, "BEQ", modeRelative, 2, false, execBEQ)
	def(0xD0, "BNE", modeRelative, 2, false, execBNE)
	def(0x30, "BMI", modeRelative, 2, false, execBMI)
	def(0x10, "BPL", modeRelative, 2, false, execBPL)
	def(0x50, "BVC", modeRelative, 2, false, execBVC)
	def(0x70, "BVS", modeRelative, 2, false, execBVS)

	// BIT
	def(0x24, "BIT", modeZeroPage, 3, false, execBIT)
	def(0x2C, "BIT", modeAbsolute, 4, false, execBIT)

	// BRK
	def(0x00, "BRK", modeImplicit, 7, false, execBRK)

	// flags
	def(0x18, "CLC", modeImplicit, 2, false, execCLC)
	def(0x38, "SEC", modeImplicit, 2, false, execSEC)
	def(0x58, "CLI", modeImplicit, 2, false, execCLI)
	def(0x78, "SEI", modeImplicit, 2, false, execSEI)
	def(0xD8, "CLD", modeImplicit, 2, false, execCLD)
	def(0xF8, "SED", modeImplicit, 2, false, execSED)
	def(0xB8, "CLV", modeImplicit, 2, false, execCLV)

	// CMP
	def(0xC9, "CMP", modeImmediate, 2, false, execCMP)
	def(0xC5, "CMP", modeZeroPage, 3, false, execCMP)
	def(0xD5, "CMP", modeZeroPageX, 4, false, execCMP)
	def(0xCD, "CMP", modeAbsolute, 4, false, execCMP)
	def(0xDD, "CMP", modeAbsoluteX, 4, true, execCMP)
	def(0xD9, "CMP", modeAbsoluteY, 4, true, execCMP)
	def(0xC1, "CMP", modeIndirectX, 6, false, execCMP)
	def(0xD1, "CMP", modeIndirectY, 5, true, execCMP)

	// CPX/CPY
	def(0xE0, "CPX", modeImmediate, 2, false, execCPX)
	def(0xE4, "CPX", modeZeroPage, 3, false, execCPX)
	def(0xEC, "CPX", modeAbsolute, 4, false, execCPX)
	def(0xC0, "CPY", modeImmediate, 2, false, execCPY)
	def(0xC4, "CPY", modeZeroPage, 3, false, execCPY)
	def(0xCC, "CPY", modeAbsolute, 4, false, execCPY)

	// DEC/DEX/DEY
	def(0xC6, "DEC", modeZeroPage, 5, false, execDEC)
	def(0xD6, "DEC", modeZeroPageX, 6, false, execDEC)
	def(0xCE, "DEC", modeAbsolute, 6, false, execDEC)
	def(0xDE, "DEC", modeAbsoluteX, 7, false, execDEC)
	def(0xCA, "DEX", modeImplicit, 2, false, execDEX)
	def(0x88, "DEY", modeImplicit, 2, false, execDEY)

	// EOR
	def(0x49, "EOR", modeImmediate, 2, false, execEOR)
	def(0x45, "EOR", modeZeroPage, 3, false, execEOR)
	def(0x55, "EOR", modeZeroPageX, 4, false, execEOR)
	def(0x4D, "EOR", modeAbsolute, 4, false, execEOR)
	def(0x5D, "EOR", modeAbsoluteX, 4, true, execEOR)
	def(0x59, "EOR", modeAbsoluteY, 4, true, execEOR)
	def(0x41, "EOR", modeIndirectX, 6, false, execEOR)
	def(0x51, "EOR", modeIndirectY, 5, true, execEOR)

	// INC/INX/INY
	def(0xE6, "INC", modeZeroPage, 5, false, execINC)
	def(0xF6, "INC", modeZeroPageX, 6, false, execINC)
	def(0xEE, "INC", modeAbsolute, 6, false, execINC)
	def(0xFE, "INC", modeAbsoluteX, 7, false, execINC)
	def(0xE8, "INX", modeImplicit, 2, false, execINX)
	def(0xC8, "INY", modeImplicit, 2, false, execINY)

	// JMP/JSR
	def(0x4C, "JMP", modeAbsolute, 3, false, execJMP)
	def(0x6C, "JMP", modeIndirect, 5, false, execJMP)
	def(0x20, "JSR", modeAbsolute, 6, false, execJSR)

	// LDA/LDX/LDY
	def(0xA9, "LDA", modeImmediate, 2, false, execLDA)
	def(0xA5, "LDA", modeZeroPage, 3, false, execLDA)
	def(0xB5, "LDA", modeZeroPageX, 4, false, execLDA)
	def(0xAD, "LDA", modeAbsolute, 4, false, execLDA)
	def(0xBD, "LDA", modeAbsoluteX, 4, true, execLDA)
	def(0xB9, "LDA", modeAbsoluteY, 4, true, execLDA)
	def(0xA1, "LDA", modeIndirectX, 6, false, execLDA)
	def(0xB1, "LDA", modeIndirectY, 5, true, execLDA)

	def(0xA2, "LDX", modeImmediate, 2, false, execLDX)
	def(0xA6, "LDX", modeZeroPage, 3, false, execLDX)
	def(0xB6, "LDX", modeZeroPageY, 4, false, execLDX)
	def(0xAE, "LDX", modeAbsolute, 4, false, execLDX)
	def(0xBE, "LDX", modeAbsoluteY, 4, true, execLDX)

	def(0xA0, "LDY", modeImmediate, 2, false, execLDY)
	def(0xA4, "LDY", modeZeroPage, 3, false, execLDY)
	def(0xB4, "LDY", modeZeroPageX, 4, false, execLDY)
	def(0xAC, "LDY", modeAbsolute, 4, false, execLDY)
	def(0xBC, "LDY", modeAbsoluteX, 4, true, execLDY)

	// LSR
	def(0x4A, "LSR", modeAccumulator, 2, false, execLSR)
	def(0x46, "LSR", modeZeroPage, 5, false, execLSR)
	def(0x56, "LSR", modeZeroPageX, 6, false, execLSR)
	def(0x4E, "LSR", modeAbsolute, 6, false, execLSR)
	def(0x5E, "LSR", modeAbsoluteX, 7, false, execLSR)

	// NOP
	def(0xEA, "NOP", modeImplicit, 2, false, execNOP)

	// ORA
	def(0x09, "ORA", modeImmediate, 2, false, execORA)
	def(0x05, "ORA", modeZeroPage, 3, false, execORA)
	def(0x15, "ORA", modeZeroPageX, 4, false, execORA)
	def(0x0D, "ORA", modeAbsolute, 4, false, execORA)
	def(0x1D, "ORA", modeAbsoluteX, 4, true, execORA)
	def(0x19, "ORA", modeAbsoluteY, 4, true, execORA)
	def(0x01, "ORA", modeIndirectX, 6, false, execORA)
	def(0x11, "ORA", modeIndirectY, 5, true, execORA)

	// stack
	def(0x48, "PHA", modeImplicit, 3, false, execPHA)
	def(0x08, "PHP", modeImplicit, 3, false, execPHP)
	def(0x68, "PLA", modeImplicit, 4, false, execPLA)
	def(0x28, "PLP", modeImplicit, 4, false, execPLP)

	// ROL
	def(0x2A, "ROL", modeAccumulator, 2, false, execROL)
	def(0x26, "ROL", modeZeroPage, 5, false, execROL)
	def(0x36, "ROL", modeZeroPageX, 6, false, execROL)
	def(0x2E, "ROL", modeAbsolute, 6, false, execROL)
	def(0x3E, "ROL", modeAbsoluteX, 7, false, execROL)

	// ROR
	def(0x6A, "ROR", modeAccumulator, 2, false, execROR)
	def(0x66, "ROR", modeZeroPage, 5, false, execROR)
	def(0x76, "ROR", modeZeroPageX, 6, false, execROR)
	def(0x6E, "ROR", modeAbsolute, 6, false, execROR)
	def(0x7E, "ROR", modeAbsoluteX, 7, false, execROR)

	// RTI/RTS
	def(0x40, "RTI", modeImplicit, 6, false, execRTI)
	def(0x60, "RTS", modeImplicit, 6, false, execRTS)

	// SBC
	def(0xE9, "SBC", modeImmediate, 2, false, execSBC)
	def(0xE5, "SBC", modeZeroPage, 3, false, execSBC)
	def(0xF5, "SBC", modeZeroPageX, 4, false, execSBC)
	def(0xED, "SBC", modeAbsolute, 4, false, execSBC)
	def(0xFD, "SBC", modeAbsoluteX, 4, true, execSBC)
	def(0xF9, "SBC", modeAbsoluteY, 4, true, execSBC)
	def(0xE1, "SBC", modeIndirectX, 6, false, execSBC)
	def(0xF1, "SBC", modeIndirectY, 5, true, execSBC)

	// STA/STX/STY
	def(0x85, "STA", modeZeroPage, 3, false, execSTA)
	def(0x95, "STA", modeZeroPageX, 4, false, execSTA)
	def(0x8D, "STA", modeAbsolute, 4, false, execSTA)
	def(0x9D, "STA", modeAbsoluteX, 5, false, execSTA)
	def(0x99, "STA", modeAbsoluteY, 5, false, execSTA)
	def(0x81, "STA", modeIndirectX, 6, false, execSTA)
	def(0x91, "STA", modeIndirectY, 6, false, execSTA)

	def(0x86, "STX", modeZeroPage, 3, false, execSTX)
	def(0x96, "STX", modeZeroPageY, 4, false, execSTX)
	def(0x8E, "STX", modeAbsolute, 4, false, execSTX)

	def(0x84, "STY", modeZeroPage, 3, false, execSTY)
	def(0x94, "STY", modeZeroPageX, 4, false, execSTY)
	def(0x8C, "STY", modeAbsolute, 4, false, execSTY)

	// transfers
	def(0xAA, "TAX", modeImplicit, 2, false, execTAX)
	def(0xA8, "TAY", modeImplicit, 2, false, execTAY)
	def(0x8A, "TXA", modeImplicit, 2, false, execTXA)
	def(0x98, "TYA", modeImplicit, 2, false, execTYA)
	def(0xBA, "TSX", modeImplicit, 2, false, execTSX)
	def(0x9A, "TXS", modeImplicit, 2, false, execTXS)

	defineUndocumented()
}
