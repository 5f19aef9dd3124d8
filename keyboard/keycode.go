// SPDX-License-Identifier: Unlicense OR MIT

package keyboard

// KeyCode names a physical key on a US 104-key keyboard.
type KeyCode uint8

const (
	KeyNone KeyCode = iota

	Escape
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	PrintScreen
	ScrollLock
	PauseBreak

	Oem8 // `~
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	OemMinus
	OemPlus
	Backspace
	Insert
	Home
	PageUp
	NumpadLock
	NumpadDivide
	NumpadMultiply
	NumpadSubtract

	Tab
	Q
	W
	E
	R
	T
	Y
	U
	I
	O
	P
	Oem4 // [{
	Oem6 // ]}
	Oem5 // \|
	Delete
	End
	PageDown
	Numpad7
	Numpad8
	Numpad9
	NumpadAdd

	CapsLock
	A
	S
	D
	F
	G
	H
	J
	K
	L
	Oem1 // ;:
	Oem3 // '"
	Return
	Numpad4
	Numpad5
	Numpad6

	LShift
	Z
	X
	C
	V
	B
	N
	M
	OemComma
	OemPeriod
	Oem2 // /?
	RShift
	ArrowUp
	Numpad1
	Numpad2
	Numpad3
	NumpadEnter

	LControl
	LWin
	LAlt
	Spacebar
	RAltGr
	RWin
	Apps
	RControl
	ArrowLeft
	ArrowDown
	ArrowRight
	Numpad0
	NumpadPeriod

	PrevTrack
	NextTrack
	Mute
	Play
	Stop
	VolumeDown
	VolumeUp

	keyCodeEnd
)

var keyNames = [keyCodeEnd]string{
	KeyNone: "None", Escape: "Escape",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	PrintScreen: "PrintScreen", ScrollLock: "ScrollLock", PauseBreak: "PauseBreak",
	Oem8: "Oem8", Key1: "Key1", Key2: "Key2", Key3: "Key3", Key4: "Key4",
	Key5: "Key5", Key6: "Key6", Key7: "Key7", Key8: "Key8", Key9: "Key9",
	Key0: "Key0", OemMinus: "OemMinus", OemPlus: "OemPlus", Backspace: "Backspace",
	Insert: "Insert", Home: "Home", PageUp: "PageUp", NumpadLock: "NumpadLock",
	NumpadDivide: "NumpadDivide", NumpadMultiply: "NumpadMultiply",
	NumpadSubtract: "NumpadSubtract", Tab: "Tab",
	Q: "Q", W: "W", E: "E", R: "R", T: "T", Y: "Y", U: "U", I: "I", O: "O", P: "P",
	Oem4: "Oem4", Oem6: "Oem6", Oem5: "Oem5", Delete: "Delete", End: "End",
	PageDown: "PageDown", Numpad7: "Numpad7", Numpad8: "Numpad8",
	Numpad9: "Numpad9", NumpadAdd: "NumpadAdd", CapsLock: "CapsLock",
	A: "A", S: "S", D: "D", F: "F", G: "G", H: "H", J: "J", K: "K", L: "L",
	Oem1: "Oem1", Oem3: "Oem3", Return: "Return",
	Numpad4: "Numpad4", Numpad5: "Numpad5", Numpad6: "Numpad6",
	LShift: "LShift", Z: "Z", X: "X", C: "C", V: "V", B: "B", N: "N", M: "M",
	OemComma: "OemComma", OemPeriod: "OemPeriod", Oem2: "Oem2", RShift: "RShift",
	ArrowUp: "ArrowUp", Numpad1: "Numpad1", Numpad2: "Numpad2",
	Numpad3: "Numpad3", NumpadEnter: "NumpadEnter",
	LControl: "LControl", LWin: "LWin", LAlt: "LAlt", Spacebar: "Spacebar",
	RAltGr: "RAltGr", RWin: "RWin", Apps: "Apps", RControl: "RControl",
	ArrowLeft: "ArrowLeft", ArrowDown: "ArrowDown", ArrowRight: "ArrowRight",
	Numpad0: "Numpad0", NumpadPeriod: "NumpadPeriod",
	PrevTrack: "PrevTrack", NextTrack: "NextTrack", Mute: "Mute", Play: "Play",
	Stop: "Stop", VolumeDown: "VolumeDown", VolumeUp: "VolumeUp",
}

func (k KeyCode) String() string {
	if k >= keyCodeEnd {
		return "Unknown"
	}
	return keyNames[k]
}
