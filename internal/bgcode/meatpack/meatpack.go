// Package meatpack decodes the "MeatPack preserving comment lines"
// G-code encoding (bgcode encoding id 2): pairs of 4-bit codes are packed
// into a byte against a lookup table of common G-code characters, with an
// escape code for literal bytes and a command channel (introduced by
// 0xFF) that can suspend packing around raw comment text. Plain MeatPack
// (encoding id 1, no comment preservation) is a documented gap; see the
// UnimplementedEncoding error in internal/bgcode's dispatch.
package meatpack

import "fmt"

// Result reports whether Unpack needs another byte or has a complete line
// ready, mirroring the streaming "unpacker" contract of spec.md §4.7.
type Result int

const (
	WaitingForNextByte Result = iota
	Line
)

// Command ids recognised on the 0xFF escape channel.
const (
	cmdEnablePacking   = 0x01
	cmdDisablePacking  = 0x02
	cmdEnableNoSpaces  = 0x03
	cmdDisableNoSpaces = 0x04
	cmdReset           = 0xF0
)

// table maps the 4-bit codes 0x0-0xE to the characters most common in
// G-code bodies; code 0xF is reserved as the "literal byte follows"
// escape.
var table = [15]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.', ' ', '\n', 'G', 'X'}

const literalEscape = 0xF

// Unpacker holds the streaming decode state for one G-code block.
type Unpacker struct {
	packingEnabled  bool
	noSpaces        bool
	awaitingCommand bool
	awaitingLiteral bool

	nibbleQueue []byte
	line        []byte
	prevWasDigit bool
}

// NewUnpacker returns an Unpacker in its initial state: packing enabled,
// no-space expansion disabled.
func NewUnpacker() *Unpacker {
	return &Unpacker{packingEnabled: true}
}

// Unpack feeds one byte of the packed stream. It returns Line with the
// decoded line (excluding the trailing newline) whenever a '\n' is
// reached; otherwise WaitingForNextByte with a nil line.
func (u *Unpacker) Unpack(b byte) (Result, []byte, error) {
	if u.awaitingCommand {
		u.awaitingCommand = false
		return u.applyCommand(b)
	}
	if b == 0xFF {
		u.awaitingCommand = true
		return WaitingForNextByte, nil, nil
	}
	if u.awaitingLiteral {
		u.awaitingLiteral = false
		result, line, err := u.consumeChar(b)
		if err != nil || result == Line {
			return result, line, err
		}
		// A literal escape in the low nibble leaves the high nibble queued.
		return u.drain()
	}
	if !u.packingEnabled {
		return u.consumeChar(b)
	}

	u.nibbleQueue = append(u.nibbleQueue, b&0x0F, (b>>4)&0x0F)
	return u.drain()
}

func (u *Unpacker) applyCommand(cmd byte) (Result, []byte, error) {
	switch cmd {
	case cmdEnablePacking:
		u.packingEnabled = true
	case cmdDisablePacking:
		u.packingEnabled = false
	case cmdEnableNoSpaces:
		u.noSpaces = true
	case cmdDisableNoSpaces:
		u.noSpaces = false
	case cmdReset:
		u.packingEnabled = true
		u.noSpaces = false
		u.nibbleQueue = nil
		u.line = u.line[:0]
		u.prevWasDigit = false
	default:
		return WaitingForNextByte, nil, fmt.Errorf("meatpack: unrecognised command byte %#x", cmd)
	}
	return WaitingForNextByte, nil, nil
}

func (u *Unpacker) drain() (Result, []byte, error) {
	for len(u.nibbleQueue) > 0 {
		code := u.nibbleQueue[0]
		u.nibbleQueue = u.nibbleQueue[1:]
		if code == literalEscape {
			u.awaitingLiteral = true
			return WaitingForNextByte, nil, nil
		}
		if int(code) >= len(table) {
			return WaitingForNextByte, nil, fmt.Errorf("meatpack: code %#x out of range", code)
		}
		result, line, err := u.consumeChar(table[code])
		if err != nil || result == Line {
			return result, line, err
		}
	}
	return WaitingForNextByte, nil, nil
}

// consumeChar appends a single decoded character to the line buffer,
// applying no-space expansion, and flushes the line on '\n'.
func (u *Unpacker) consumeChar(ch byte) (Result, []byte, error) {
	isDigit := ch >= '0' && ch <= '9'
	if u.noSpaces && u.prevWasDigit && ch >= 'A' && ch <= 'Z' {
		u.line = append(u.line, ' ')
	}
	u.prevWasDigit = isDigit

	if ch == '\n' {
		line := append([]byte(nil), u.line...)
		u.line = u.line[:0]
		return Line, line, nil
	}
	u.line = append(u.line, ch)
	return WaitingForNextByte, nil, nil
}

// Close flushes a trailing partial line with no terminating newline, if
// any bytes remain buffered.
func (u *Unpacker) Close() []byte {
	if len(u.line) == 0 {
		return nil
	}
	line := append([]byte(nil), u.line...)
	u.line = u.line[:0]
	return line
}
