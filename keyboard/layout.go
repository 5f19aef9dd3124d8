// SPDX-License-Identifier: Unlicense OR MIT

package keyboard

// us104 lists the unshifted and shifted characters of each key.
var us104 = [keyCodeEnd][2]rune{
	Oem8: {'`', '~'},
	Key1: {'1', '!'}, Key2: {'2', '@'}, Key3: {'3', '#'}, Key4: {'4', '$'},
	Key5: {'5', '%'}, Key6: {'6', '^'}, Key7: {'7', '&'}, Key8: {'8', '*'},
	Key9: {'9', '('}, Key0: {'0', ')'},
	OemMinus: {'-', '_'}, OemPlus: {'=', '+'},
	Backspace: {'\b', '\b'}, Tab: {'\t', '\t'},
	Q: {'q', 'Q'}, W: {'w', 'W'}, E: {'e', 'E'}, R: {'r', 'R'}, T: {'t', 'T'},
	Y: {'y', 'Y'}, U: {'u', 'U'}, I: {'i', 'I'}, O: {'o', 'O'}, P: {'p', 'P'},
	Oem4: {'[', '{'}, Oem6: {']', '}'}, Oem5: {'\\', '|'},
	A: {'a', 'A'}, S: {'s', 'S'}, D: {'d', 'D'}, F: {'f', 'F'}, G: {'g', 'G'},
	H: {'h', 'H'}, J: {'j', 'J'}, K: {'k', 'K'}, L: {'l', 'L'},
	Oem1: {';', ':'}, Oem3: {'\'', '"'},
	Z: {'z', 'Z'}, X: {'x', 'X'}, C: {'c', 'C'}, V: {'v', 'V'}, B: {'b', 'B'},
	N: {'n', 'N'}, M: {'m', 'M'},
	OemComma: {',', '<'}, OemPeriod: {'.', '>'}, Oem2: {'/', '?'},
	Spacebar:     {' ', ' '},
	NumpadDivide: {'/', '/'}, NumpadMultiply: {'*', '*'},
	NumpadSubtract: {'-', '-'}, NumpadAdd: {'+', '+'},
}

// numpad lists the keypad characters produced with Num Lock on.
var numpad = [keyCodeEnd]rune{
	Numpad0: '0', Numpad1: '1', Numpad2: '2', Numpad3: '3', Numpad4: '4',
	Numpad5: '5', Numpad6: '6', Numpad7: '7', Numpad8: '8', Numpad9: '9',
	NumpadPeriod: '.',
}

func mapKeyCode(code KeyCode, m Modifiers) DecodedKey {
	if code == Return || code == NumpadEnter {
		return DecodedKey{Code: Return}
	}
	if r := numpad[code]; r != 0 {
		if !m.NumLock {
			return DecodedKey{Code: code}
		}
		return DecodedKey{Char: r, Code: code}
	}
	chars := us104[code]
	if chars[0] == 0 {
		return DecodedKey{Code: code}
	}
	shift := m.shifted()
	if 'a' <= chars[0] && chars[0] <= 'z' {
		shift = shift != m.CapsLock
	}
	if shift {
		return DecodedKey{Char: chars[1], Code: code}
	}
	return DecodedKey{Char: chars[0], Code: code}
}

const shiftMake = 0x2a

// Scancodes returns the bytes a keyboard sends when r is typed, with
// Caps Lock off. Shifted characters are wrapped in a left shift press
// and release.
func Scancodes(r rune) ([]byte, bool) {
	if r == '\n' || r == '\r' {
		return []byte{0x1c, 0x1c | releaseBit}, true
	}
	for b := byte(1); b < byte(len(set1)); b++ {
		code := set1[b]
		if numpad[code] != 0 || code == NumpadMultiply || code == NumpadSubtract || code == NumpadAdd {
			continue
		}
		chars := us104[code]
		switch r {
		case 0:
			return nil, false
		case chars[0]:
			return []byte{b, b | releaseBit}, true
		case chars[1]:
			return []byte{shiftMake, b, b | releaseBit, shiftMake | releaseBit}, true
		}
	}
	return nil, false
}
