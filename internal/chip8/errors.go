package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a CALL would push beyond the 16
	// stack slots.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when RET is executed with an empty stack.
	ErrStackUnderflow = errors.New("return with empty call stack")
	// ErrExited is returned after the exit opcode (00FD). The scheduler
	// treats it as a clean shutdown rather than a fault.
	ErrExited = errors.New("program exited")
)

// OpcodeError reports an instruction that matches no known pattern, or one
// that is illegal for the active mode.
type OpcodeError struct {
	Opcode uint16
	PC     uint16 // address the instruction was fetched from
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode %04X at %04X", e.Opcode, e.PC)
}

// MemoryError reports a read or write outside the 4 KiB memory array.
type MemoryError struct {
	Addr int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory access out of range at %04X", e.Addr)
}
