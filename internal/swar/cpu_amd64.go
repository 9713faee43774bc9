//go:build amd64

package swar

import (
	"golang.org/x/sys/cpu"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// HasHardwareSIMD reports whether the host CPU exposes a vector ISA wide
// enough to make a true SIMD prefilter worthwhile. The scanning core
// always uses the portable SWAR prefilter regardless of this value; it
// exists purely as an observability signal logged once at init.
func HasHardwareSIMD() bool {
	return cpu.X86.HasAVX2 || cpu.X86.HasSSE42
}

func init() {
	log := logger.NewLogger(coloransi.Color(coloransi.Cyan, coloransi.ColorOrange, "swar"))
	log.Debugln("amd64 host, hardware SIMD available:", HasHardwareSIMD(), "(prefilter still runs in portable SWAR)")
}
