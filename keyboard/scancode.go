// SPDX-License-Identifier: Unlicense OR MIT

package keyboard

// KeyState is the direction of a key transition.
type KeyState uint8

const (
	Up KeyState = iota
	Down
)

func (s KeyState) String() string {
	if s == Down {
		return "Down"
	}
	return "Up"
}

// KeyEvent is a single key press or release.
type KeyEvent struct {
	Code  KeyCode
	State KeyState
}

type decodeError string

func (e decodeError) Error() string {
	return string(e)
}

const (
	ErrUnknownKeyCode decodeError = "keyboard: unknown key code"
	ErrBadSequence    decodeError = "keyboard: invalid scancode sequence"
)

const (
	prefixExtended = 0xe0
	// Pause is the only key using this prefix: e1 1d 45 on press,
	// e1 9d c5 on release.
	prefixPause = 0xe1
	releaseBit  = 0x80
)

type decodeState uint8

const (
	stateStart decodeState = iota
	stateExtended
	statePause
	statePauseCode
)

// ScancodeSet1 turns the bytes read from the PS/2 data port into key
// events. The zero value is ready to use.
type ScancodeSet1 struct {
	state        decodeState
	pauseRelease bool
}

// Advance feeds one byte to the decoder. It reports false while a
// multi-byte sequence is incomplete. Unknown codes return
// ErrUnknownKeyCode and reset the decoder.
func (s *ScancodeSet1) Advance(b byte) (KeyEvent, bool, error) {
	switch s.state {
	case stateExtended:
		s.state = stateStart
		return lookup(&set1Extended, b)
	case statePause:
		if b&^releaseBit != 0x1d {
			s.state = stateStart
			return KeyEvent{}, false, ErrBadSequence
		}
		s.pauseRelease = b&releaseBit != 0
		s.state = statePauseCode
		return KeyEvent{}, false, nil
	case statePauseCode:
		s.state = stateStart
		if b&^releaseBit != 0x45 || (b&releaseBit != 0) != s.pauseRelease {
			return KeyEvent{}, false, ErrBadSequence
		}
		ev := KeyEvent{Code: PauseBreak, State: Down}
		if s.pauseRelease {
			ev.State = Up
		}
		return ev, true, nil
	}
	switch b {
	case prefixExtended:
		s.state = stateExtended
		return KeyEvent{}, false, nil
	case prefixPause:
		s.state = statePause
		return KeyEvent{}, false, nil
	}
	return lookup(&set1, b)
}

func lookup(table *[0x80]KeyCode, b byte) (KeyEvent, bool, error) {
	code := table[b&^releaseBit]
	if code == KeyNone {
		return KeyEvent{}, false, ErrUnknownKeyCode
	}
	ev := KeyEvent{Code: code, State: Down}
	if b&releaseBit != 0 {
		ev.State = Up
	}
	return ev, true, nil
}

// Make codes without a prefix.
var set1 = [0x80]KeyCode{
	0x01: Escape,
	0x02: Key1, 0x03: Key2, 0x04: Key3, 0x05: Key4, 0x06: Key5,
	0x07: Key6, 0x08: Key7, 0x09: Key8, 0x0a: Key9, 0x0b: Key0,
	0x0c: OemMinus, 0x0d: OemPlus, 0x0e: Backspace, 0x0f: Tab,
	0x10: Q, 0x11: W, 0x12: E, 0x13: R, 0x14: T, 0x15: Y, 0x16: U,
	0x17: I, 0x18: O, 0x19: P, 0x1a: Oem4, 0x1b: Oem6,
	0x1c: Return, 0x1d: LControl,
	0x1e: A, 0x1f: S, 0x20: D, 0x21: F, 0x22: G, 0x23: H, 0x24: J,
	0x25: K, 0x26: L, 0x27: Oem1, 0x28: Oem3, 0x29: Oem8,
	0x2a: LShift, 0x2b: Oem5,
	0x2c: Z, 0x2d: X, 0x2e: C, 0x2f: V, 0x30: B, 0x31: N, 0x32: M,
	0x33: OemComma, 0x34: OemPeriod, 0x35: Oem2, 0x36: RShift,
	0x37: NumpadMultiply, 0x38: LAlt, 0x39: Spacebar, 0x3a: CapsLock,
	0x3b: F1, 0x3c: F2, 0x3d: F3, 0x3e: F4, 0x3f: F5,
	0x40: F6, 0x41: F7, 0x42: F8, 0x43: F9, 0x44: F10,
	0x45: NumpadLock, 0x46: ScrollLock,
	0x47: Numpad7, 0x48: Numpad8, 0x49: Numpad9, 0x4a: NumpadSubtract,
	0x4b: Numpad4, 0x4c: Numpad5, 0x4d: Numpad6, 0x4e: NumpadAdd,
	0x4f: Numpad1, 0x50: Numpad2, 0x51: Numpad3,
	0x52: Numpad0, 0x53: NumpadPeriod,
	0x57: F11, 0x58: F12,
}

// Make codes following an 0xe0 prefix.
var set1Extended = [0x80]KeyCode{
	0x10: PrevTrack, 0x19: NextTrack,
	0x1c: NumpadEnter, 0x1d: RControl,
	0x20: Mute, 0x22: Play, 0x24: Stop,
	0x2e: VolumeDown, 0x30: VolumeUp,
	0x35: NumpadDivide, 0x37: PrintScreen, 0x38: RAltGr,
	0x47: Home, 0x48: ArrowUp, 0x49: PageUp,
	0x4b: ArrowLeft, 0x4d: ArrowRight,
	0x4f: End, 0x50: ArrowDown, 0x51: PageDown,
	0x52: Insert, 0x53: Delete,
	0x5b: LWin, 0x5c: RWin, 0x5d: Apps,
}
