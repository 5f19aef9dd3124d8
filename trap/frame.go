// SPDX-License-Identifier: Unlicense OR MIT

package trap

// Frame is the stack frame the processor pushes on an interrupt, in
// memory order.
type Frame struct {
	InstructionPointer uint64
	CodeSegment        uint64
	CPUFlags           uint64
	StackPointer       uint64
	StackSegment       uint64
}

// PageFaultErrorCode is the error code pushed with a page fault.
type PageFaultErrorCode uint64

const (
	// Set for protection violations, clear for non-present pages.
	ProtectionViolation PageFaultErrorCode = 1 << 0
	// Set for writes, clear for reads.
	CausedByWrite PageFaultErrorCode = 1 << 1
	// Set for accesses from ring 3.
	UserMode         PageFaultErrorCode = 1 << 2
	MalformedTable   PageFaultErrorCode = 1 << 3
	InstructionFetch PageFaultErrorCode = 1 << 4
	ProtectionKey    PageFaultErrorCode = 1 << 5
	ShadowStack      PageFaultErrorCode = 1 << 6
	SGX              PageFaultErrorCode = 1 << 15
)

var faultFlagNames = [...]struct {
	bit  PageFaultErrorCode
	name string
}{
	{MalformedTable, "reserved-bit"},
	{InstructionFetch, "instruction-fetch"},
	{ProtectionKey, "protection-key"},
	{ShadowStack, "shadow-stack"},
	{SGX, "sgx"},
}

// appendDescription appends a space separated description of the
// error code, always naming the page state, access and privilege.
//
//go:nosplit
func (c PageFaultErrorCode) appendDescription(b []byte) []byte {
	if c&ProtectionViolation != 0 {
		b = append(b, "protection-violation"...)
	} else {
		b = append(b, "not-present"...)
	}
	if c&CausedByWrite != 0 {
		b = append(b, " write"...)
	} else {
		b = append(b, " read"...)
	}
	if c&UserMode != 0 {
		b = append(b, " user"...)
	} else {
		b = append(b, " kernel"...)
	}
	for _, f := range faultFlagNames {
		if c&f.bit != 0 {
			b = append(b, ' ')
			b = append(b, f.name...)
		}
	}
	return b
}

func (c PageFaultErrorCode) String() string {
	var buf [128]byte
	return string(c.appendDescription(buf[:0]))
}
