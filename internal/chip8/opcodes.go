package chip8

// execute decodes op and runs the matching handler. Unknown patterns and
// opcodes illegal in the active mode return an OpcodeError.
func (vm *VM) execute(op uint16) error {
	nnn := op & 0x0FFF
	kk := byte(op)
	n := byte(op & 0x000F)
	x := byte(op >> 8 & 0xF)
	y := byte(op >> 4 & 0xF)

	switch op & 0xF000 {
	case 0x0000:
		return vm.executeSystem(op, n)

	case 0x1000: // JP addr
		vm.PC = nnn

	case 0x2000: // CALL addr
		if vm.SP >= StackDepth {
			return ErrStackOverflow
		}
		vm.Stack[vm.SP] = vm.PC
		vm.SP++
		vm.PC = nnn

	case 0x3000: // SE Vx, byte
		if vm.V[x] == kk {
			vm.PC += 2
		}

	case 0x4000: // SNE Vx, byte
		if vm.V[x] != kk {
			vm.PC += 2
		}

	case 0x5000: // SE Vx, Vy
		if n != 0 {
			return vm.illegal(op)
		}
		if vm.V[x] == vm.V[y] {
			vm.PC += 2
		}

	case 0x6000: // LD Vx, byte
		vm.V[x] = kk

	case 0x7000: // ADD Vx, byte (no carry)
		vm.V[x] += kk

	case 0x8000:
		return vm.executeALU(op, x, y, n)

	case 0x9000: // SNE Vx, Vy
		if n != 0 {
			return vm.illegal(op)
		}
		if vm.V[x] != vm.V[y] {
			vm.PC += 2
		}

	case 0xA000: // LD I, addr
		vm.I = nnn

	case 0xB000: // JP V0, addr (super: JP Vx, addr)
		if vm.quirks.jumpUsesVX {
			vm.PC = nnn + uint16(vm.V[nnn>>8])
		} else {
			vm.PC = nnn + uint16(vm.V[0])
		}

	case 0xC000: // RND Vx, byte
		vm.V[x] = byte(vm.rng.Intn(256)) & kk

	case 0xD000: // DRW Vx, Vy, nibble
		return vm.draw(x, y, n)

	case 0xE000:
		switch kk {
		case 0x9E: // SKP Vx
			if vm.input.IsKeyPressed(vm.V[x] & 0xF) {
				vm.PC += 2
			}
		case 0xA1: // SKNP Vx
			if !vm.input.IsKeyPressed(vm.V[x] & 0xF) {
				vm.PC += 2
			}
		default:
			return vm.illegal(op)
		}

	case 0xF000:
		return vm.executeMisc(op, x, kk)
	}

	return nil
}

// executeSystem handles the 0x0 group: clear, return and the extended
// scroll/resolution/exit opcodes. Anything else (including RCA 1802 SYS
// calls) is a decode error.
func (vm *VM) executeSystem(op uint16, n byte) error {
	switch {
	case op == 0x00E0: // CLS
		vm.fb.Clear()

	case op == 0x00EE: // RET
		if vm.SP <= 0 {
			return ErrStackUnderflow
		}
		vm.SP--
		vm.PC = vm.Stack[vm.SP]

	case op&0xFFF0 == 0x00C0 && vm.quirks.extendedOps: // SCD n
		vm.fb.ScrollDown(int(n))

	case op&0xFFF0 == 0x00D0 && vm.quirks.extendedOps: // SCU n
		vm.fb.ScrollUp(int(n))

	case op == 0x00FB && vm.quirks.extendedOps: // SCR
		if !vm.fb.HighRes() {
			return vm.illegal(op)
		}
		vm.fb.ScrollRight()

	case op == 0x00FC && vm.quirks.extendedOps: // SCL
		if !vm.fb.HighRes() {
			return vm.illegal(op)
		}
		vm.fb.ScrollLeft()

	case op == 0x00FD && vm.quirks.extendedOps: // EXIT
		return ErrExited

	case op == 0x00FE && vm.quirks.extendedOps: // LOW
		vm.fb.SetHighRes(false)

	case op == 0x00FF && vm.quirks.extendedOps: // HIGH
		vm.fb.SetHighRes(true)

	default:
		return vm.illegal(op)
	}

	return nil
}

// executeALU handles the 0x8 group. VF ordering matters: the flag is written
// after the result so the handlers behave when x or y is 0xF.
func (vm *VM) executeALU(op uint16, x, y, n byte) error {
	switch n {
	case 0x0: // LD Vx, Vy
		vm.V[x] = vm.V[y]

	case 0x1: // OR Vx, Vy
		vm.V[x] |= vm.V[y]
		if vm.quirks.resetVF {
			vm.V[0xF] = 0
		}

	case 0x2: // AND Vx, Vy
		vm.V[x] &= vm.V[y]
		if vm.quirks.resetVF {
			vm.V[0xF] = 0
		}

	case 0x3: // XOR Vx, Vy
		vm.V[x] ^= vm.V[y]
		if vm.quirks.resetVF {
			vm.V[0xF] = 0
		}

	case 0x4: // ADD Vx, Vy with carry
		sum := uint16(vm.V[x]) + uint16(vm.V[y])
		vm.V[x] = byte(sum)
		vm.V[0xF] = byte(sum >> 8)

	case 0x5: // SUB Vx, Vy; VF = NOT borrow
		notBorrow := byte(0)
		if vm.V[x] >= vm.V[y] {
			notBorrow = 1
		}
		vm.V[x] -= vm.V[y]
		vm.V[0xF] = notBorrow

	case 0x6: // SHR Vx {, Vy}
		if vm.quirks.shiftCopiesY {
			vm.V[x] = vm.V[y]
		}
		bit := vm.V[x] & 1
		vm.V[x] >>= 1
		vm.V[0xF] = bit

	case 0x7: // SUBN Vx, Vy; Vx = Vy - Vx, VF = NOT borrow
		notBorrow := byte(0)
		if vm.V[y] >= vm.V[x] {
			notBorrow = 1
		}
		vm.V[x] = vm.V[y] - vm.V[x]
		vm.V[0xF] = notBorrow

	case 0xE: // SHL Vx {, Vy}
		if vm.quirks.shiftCopiesY {
			vm.V[x] = vm.V[y]
		}
		bit := vm.V[x] >> 7
		vm.V[x] <<= 1
		vm.V[0xF] = bit

	default:
		return vm.illegal(op)
	}

	return nil
}

// executeMisc handles the 0xF group: timers, key wait, index register and
// the memory transfer opcodes.
func (vm *VM) executeMisc(op uint16, x, kk byte) error {
	switch kk {
	case 0x07: // LD Vx, DT
		vm.V[x] = vm.DT

	case 0x0A: // LD Vx, K: wait for the next key release
		vm.waiting = true
		vm.waitReg = x

	case 0x15: // LD DT, Vx
		vm.DT = vm.V[x]

	case 0x18: // LD ST, Vx
		vm.setSoundTimer(vm.V[x])

	case 0x1E: // ADD I, Vx (16-bit, no overflow check)
		vm.I += uint16(vm.V[x])

	case 0x29: // LD F, Vx: I points at the 5-byte glyph for digit Vx
		vm.I = uint16(vm.V[x]) * GlyphSize

	case 0x33: // LD B, Vx: BCD at I, I+1, I+2
		if int(vm.I)+2 >= MemorySize {
			return &MemoryError{Addr: int(vm.I) + 2}
		}
		v := vm.V[x]
		vm.Mem[vm.I] = v / 100
		vm.Mem[vm.I+1] = v / 10 % 10
		vm.Mem[vm.I+2] = v % 10

	case 0x55: // LD [I], V0..Vx
		if int(vm.I)+int(x) >= MemorySize {
			return &MemoryError{Addr: int(vm.I) + int(x)}
		}
		for i := byte(0); i <= x; i++ {
			vm.Mem[vm.I+uint16(i)] = vm.V[i]
		}
		if vm.quirks.incrementI {
			vm.I += uint16(x) + 1
		}

	case 0x65: // LD V0..Vx, [I]
		if int(vm.I)+int(x) >= MemorySize {
			return &MemoryError{Addr: int(vm.I) + int(x)}
		}
		for i := byte(0); i <= x; i++ {
			vm.V[i] = vm.Mem[vm.I+uint16(i)]
		}
		if vm.quirks.incrementI {
			vm.I += uint16(x) + 1
		}

	default:
		return vm.illegal(op)
	}

	return nil
}

// draw renders an n-row sprite from I at (Vx, Vy). n=0 draws a 16x16 sprite
// in the extended modes. The anchor wraps; past the anchor, rows and bits
// wrap in XO-CHIP and clip in the other two modes. VF reports collision.
func (vm *VM) draw(x, y, n byte) error {
	w, h := vm.fb.Size()
	px := int(vm.V[x]) % w
	py := int(vm.V[y]) % h

	rows, rowBytes := int(n), 1
	if n == 0 {
		if !vm.quirks.extendedOps {
			vm.V[0xF] = 0
			return nil
		}
		rows, rowBytes = 16, 2
	}

	if int(vm.I)+rows*rowBytes > MemorySize {
		return &MemoryError{Addr: int(vm.I) + rows*rowBytes - 1}
	}

	collision := false
	for r := 0; r < rows; r++ {
		yy := py + r
		if yy >= h {
			if !vm.quirks.spriteWraps {
				continue
			}
			yy %= h
		}
		for b := 0; b < rowBytes; b++ {
			sprite := vm.Mem[int(vm.I)+r*rowBytes+b]
			for bit := 0; bit < 8; bit++ {
				xx := px + b*8 + bit
				if xx >= w {
					if !vm.quirks.spriteWraps {
						continue
					}
					xx %= w
				}
				on := sprite >> (7 - bit) & 1
				same := vm.fb.SetPixel(xx, yy, on)
				if on == 1 && same {
					collision = true
				}
			}
		}
	}

	if collision {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
	return nil
}

// illegal builds an OpcodeError pointing at the instruction's own address.
func (vm *VM) illegal(op uint16) error {
	return &OpcodeError{Opcode: op, PC: vm.PC - 2}
}
