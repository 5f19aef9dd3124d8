// SPDX-License-Identifier: Unlicense OR MIT

// Command qemu boots a tokyo disk image in qemu-system-x86_64 with the
// kernel's serial log on standard output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

var (
	imageFlag  = flag.String("image", "tokyo.img", "raw disk image `file`")
	biosFlag   = flag.String("bios", "OVMF.fd", "UEFI firmware `file`")
	qemuFlag   = flag.String("qemu", "qemu-system-x86_64", "qemu `binary`")
	memoryFlag = flag.String("m", "256M", "guest memory `size`")
)

func main() {
	flag.Parse()
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "qemu: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

// qemuArgs returns the qemu command line for image and bios.
func qemuArgs(image, bios, memory string) []string {
	return []string{
		"-drive", "format=raw,file=" + image,
		"-bios", bios,
		"-m", memory,
		"-serial", "stdio",
		"-no-reboot",
	}
}

func run() (int, error) {
	for _, f := range []string{*imageFlag, *biosFlag} {
		if _, err := os.Stat(f); err != nil {
			return 0, err
		}
	}
	args := append(qemuArgs(*imageFlag, *biosFlag, *memoryFlag), flag.Args()...)
	slog.Info("starting qemu", "binary", *qemuFlag, "args", args)
	cmd := exec.Command(*qemuFlag, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return exit.ExitCode(), nil
		}
		return 0, fmt.Errorf("run %s: %w", *qemuFlag, err)
	}
	return 0, nil
}
