package gcode

import "strconv"

// ParseLine tokenises a single input line (no trailing newline) into a
// Command. A blank line and a ';' comment are recognised first; otherwise
// the G or M opcode selects among linear moves, arc moves, the exact
// unit/positioning tags, G92, M486 and the Gnnn/Mnnn catch-alls.
//
// Whitespace between the opcode and its first parameter is optional, and
// parameters themselves may or may not be separated by whitespace
// ("G1X94.838Y81.705F9000" is valid).
func ParseLine(raw string) (Command, error) {
	line := skipSpaces(raw)
	if line == "" {
		return Empty{}, nil
	}
	if line[0] == ';' {
		return Comment{Text: line[1:]}, nil
	}

	letter, code, rest, ok := parseOpcode(line)
	if !ok {
		return nil, newError(UnparsableCommand, raw, "line does not start with a recognised G or M opcode")
	}

	switch letter {
	case 'G':
		return parseGCommand(raw, code, rest)
	case 'M':
		return parseMCommand(raw, code, rest)
	default:
		return nil, newError(UnparsableCommand, raw, "unreachable opcode letter")
	}
}

func parseOpcode(s string) (byte, int, string, bool) {
	if len(s) == 0 {
		return 0, 0, s, false
	}
	letter := s[0]
	if letter != 'G' && letter != 'M' {
		return 0, 0, s, false
	}
	i := 1
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, 0, s, false
	}
	code, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, 0, s, false
	}
	return letter, code, s[i:], true
}

func parseGCommand(raw string, code int, rest string) (Command, error) {
	switch code {
	case 1, 0: // G1 / G01 print move, G0 / G00 non-print move
		params, trailing, err := parseRequiredParams(raw, rest, linearLetters)
		if err != nil {
			return nil, err
		}
		if err := finishOrError(raw, trailing, nil); err != nil {
			return nil, err
		}
		return LinearMove{Printing: code == 1, Params: params}, nil
	case 2, 3: // G2/G02 clockwise, G3/G03 counter-clockwise
		params, trailing, err := parseRequiredParams(raw, rest, arcLetters)
		if err != nil {
			return nil, err
		}
		if err := finishOrError(raw, trailing, nil); err != nil {
			return nil, err
		}
		form, err := arcForm(raw, params)
		if err != nil {
			return nil, err
		}
		dir := Clockwise
		if code == 3 {
			dir = CounterClockwise
		}
		return ArcMove{Direction: dir, Form: form}, nil
	case 20:
		return SetUnitsInch{}, finishOrError(raw, rest, nil)
	case 21:
		return SetUnitsMillimetre{}, finishOrError(raw, rest, nil)
	case 90:
		return SetAbsolute{}, finishOrError(raw, rest, nil)
	case 91:
		return SetRelative{}, finishOrError(raw, rest, nil)
	case 92:
		params, trailing, err := parseRequiredParams(raw, rest, linearLetters)
		if err != nil {
			return nil, err
		}
		if err := finishOrError(raw, trailing, nil); err != nil {
			return nil, err
		}
		return SetPosition{Params: params}, nil
	default:
		return UnhandledG{Code: code}, nil
	}
}

func parseMCommand(raw string, code int, rest string) (Command, error) {
	if code != 486 {
		return UnhandledM{Code: code}, nil
	}
	variant, trailing, err := parseMultiObject(raw, rest)
	if err != nil {
		return nil, err
	}
	if err := finishOrError(raw, trailing, nil); err != nil {
		return nil, err
	}
	return MultiObject{Variant: variant}, nil
}

// parseRequiredParams parses a >=1 length parameter list drawn from allowed.
func parseRequiredParams(raw, rest, allowed string) (ParamSet, string, error) {
	params, trailing := parseParams(rest, allowed)
	if params.Len() == 0 {
		return params, trailing, newError(UnparsableCommand, raw, "expected at least one parameter")
	}
	return params, trailing, nil
}

// parseParams greedily consumes letter/number pairs from allowed, each
// preceded by optional whitespace, until the next token does not match.
func parseParams(s string, allowed string) (ParamSet, string) {
	set := newParamSet()
	rest := s
	for {
		trimmed := skipSpaces(rest)
		if trimmed == "" {
			rest = trimmed
			break
		}
		letter := trimmed[0]
		if !isRecognisedLetter(letter, allowed) {
			rest = trimmed
			break
		}
		val, after, ok := parseNumberNoExponent(trimmed[1:])
		if !ok {
			rest = trimmed
			break
		}
		set.add(letter, val)
		rest = after
	}
	return set, rest
}

// finishOrError validates that nothing but optional whitespace and a
// trailing comment remains; anything else is unparsable garbage.
func finishOrError(raw, rest string, base error) error {
	if base != nil {
		return base
	}
	trailing := skipSpaces(rest)
	if trailing == "" || trailing[0] == ';' {
		return nil
	}
	return newError(UnparsableCommand, raw, "unexpected trailing content: "+trailing)
}

func arcForm(raw string, params ParamSet) (ArcForm, error) {
	hasIJ := params.Has('I') || params.Has('J')
	hasR := params.Has('R')
	if hasIJ == hasR {
		return nil, newError(InvalidArc, raw, "exactly one of (I or J) or R must be present")
	}
	if hasR {
		return ArcRadius{Params: params}, nil
	}
	return ArcCenterOffset{Params: params}, nil
}

func skipSpaces(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}
