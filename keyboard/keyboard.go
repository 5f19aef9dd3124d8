// SPDX-License-Identifier: Unlicense OR MIT

// Package keyboard decodes PS/2 scancode set 1 bytes for a US 104-key
// keyboard. Decoding never allocates, so a Keyboard can be driven
// directly from an interrupt handler.
package keyboard

// Modifiers is the state of the modifier and lock keys.
type Modifiers struct {
	LShift, RShift bool
	LCtrl, RCtrl   bool
	Alt, AltGr     bool
	CapsLock       bool
	NumLock        bool
}

func (m Modifiers) shifted() bool {
	return m.LShift || m.RShift
}

// DecodedKey is either a character or, when Char is zero, a key
// without one.
type DecodedKey struct {
	Char rune
	Code KeyCode
}

func (k DecodedKey) Printable() bool {
	return k.Char != 0
}

// Keyboard is a scancode decoder together with the modifier state.
type Keyboard struct {
	decoder ScancodeSet1
	mods    Modifiers
}

// New returns a keyboard with Num Lock on, like the firmware leaves it.
func New() Keyboard {
	return Keyboard{mods: Modifiers{NumLock: true}}
}

func (k *Keyboard) Modifiers() Modifiers {
	return k.mods
}

// AddByte feeds a scancode byte to the decoder.
func (k *Keyboard) AddByte(b byte) (KeyEvent, bool, error) {
	return k.decoder.Advance(b)
}

// ProcessKeyEvent updates the modifier state and maps presses to
// decoded keys. Releases never decode. Control chords are not
// translated to control characters.
func (k *Keyboard) ProcessKeyEvent(ev KeyEvent) (DecodedKey, bool) {
	down := ev.State == Down
	switch ev.Code {
	case LShift:
		k.mods.LShift = down
	case RShift:
		k.mods.RShift = down
	case LControl:
		k.mods.LCtrl = down
	case RControl:
		k.mods.RCtrl = down
	case LAlt:
		k.mods.Alt = down
	case RAltGr:
		k.mods.AltGr = down
	case CapsLock:
		if down {
			k.mods.CapsLock = !k.mods.CapsLock
		}
	case NumpadLock:
		if down {
			k.mods.NumLock = !k.mods.NumLock
		}
	default:
		if !down {
			return DecodedKey{}, false
		}
		return mapKeyCode(ev.Code, k.mods), true
	}
	if !down {
		return DecodedKey{}, false
	}
	return DecodedKey{Code: ev.Code}, true
}

// Feed decodes one byte. It reports false for incomplete or invalid
// sequences, releases and anything else that yields no key.
func (k *Keyboard) Feed(b byte) (DecodedKey, bool) {
	ev, ok, err := k.AddByte(b)
	if err != nil || !ok {
		return DecodedKey{}, false
	}
	return k.ProcessKeyEvent(ev)
}
