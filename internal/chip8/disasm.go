package chip8

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble formats the instruction stored at addr, for trace output and
// error reports. It does not advance the VM.
func (vm *VM) Disassemble(addr uint16) string {
	if int(addr)+1 >= MemorySize {
		return fmt.Sprintf("%04X -", addr)
	}
	op := uint16(vm.Mem[addr])<<8 | uint16(vm.Mem[addr+1])
	return fmt.Sprintf("%04X - %s", addr, DisassembleOpcode(op))
}

// DisassembleOpcode formats a single 16-bit instruction. Base-set mnemonics
// come from the retrogolib opcode table; the Super-CHIP era extensions are
// named locally since the table covers the base set only.
func DisassembleOpcode(op uint16) string {
	name, params := extendedOp(op)
	if name == "" {
		name = baseName(op)
		params = operands(op)
	}
	if name == "" {
		return fmt.Sprintf("?? #%04X", op)
	}
	if params == "" {
		return name
	}
	return fmt.Sprintf("%-4s %s", name, params)
}

// extendedOp names the scroll/resolution/exit opcodes.
func extendedOp(op uint16) (name, params string) {
	switch {
	case op&0xFFF0 == 0x00C0:
		return "SCD", fmt.Sprintf("%d", op&0xF)
	case op&0xFFF0 == 0x00D0:
		return "SCU", fmt.Sprintf("%d", op&0xF)
	case op == 0x00FB:
		return "SCR", ""
	case op == 0x00FC:
		return "SCL", ""
	case op == 0x00FD:
		return "EXIT", ""
	case op == 0x00FE:
		return "LOW", ""
	case op == 0x00FF:
		return "HIGH", ""
	}
	return "", ""
}

// baseName looks the mnemonic up in the retrogolib CHIP-8 opcode table.
func baseName(op uint16) string {
	for _, o := range chip8.Opcodes[int(op>>12)] {
		if o.Instruction != nil && op&o.Info.Mask == o.Info.Value {
			return strings.ToUpper(o.Instruction.Name)
		}
	}
	return ""
}

// operands formats the operand list for a base-set instruction.
func operands(op uint16) string {
	nnn := op & 0x0FFF
	kk := byte(op)
	n := op & 0xF
	x := op >> 8 & 0xF
	y := op >> 4 & 0xF

	switch op & 0xF000 {
	case 0x0000:
		return "" // CLS, RET
	case 0x1000, 0x2000:
		return fmt.Sprintf("#%03X", nnn)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, #%02X", x, kk)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		if n == 0x6 || n == 0xE {
			return fmt.Sprintf("V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, #%03X", nnn)
	case 0xB000:
		return fmt.Sprintf("V0, #%03X", nnn)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, %d", x, y, n)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	case 0xF000:
		switch kk {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x1E:
			return fmt.Sprintf("I, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}
