// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "tokyo.dev/tokyo/trap"

// timerHz is the rate of the timer interrupt.
const timerHz = 100

// initTimer programs the interval timer on controller line 0.
//
//go:nosplit
func initTimer() error {
	hz, err := trap.SetTimerFrequency(&ports, timerHz)
	if err != nil {
		return err
	}
	logValue("timer hz", uint64(hz))
	return nil
}
