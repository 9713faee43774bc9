package hexdump

import (
	"strings"
	"testing"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

func TestDumpToWriterBasicLayout(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03}
	options := DefaultOptions()
	options.ShowASCII = false

	// Every hex cell carries its own color codes; zero bytes use ZeroColor.
	hexRun := strings.Join([]string{
		coloransi.Foreground(options.ZeroColor, "00"),
		coloransi.Foreground(options.HexColor, "01"),
		coloransi.Foreground(options.HexColor, "02"),
		coloransi.Foreground(options.HexColor, "03"),
	}, " ")

	out := Dump(data, options)
	if !strings.Contains(out, hexRun) {
		t.Fatalf("hex bytes missing from output: %q", out)
	}
	if !strings.Contains(out, "00000000") {
		t.Fatalf("offset column missing from output: %q", out)
	}
}

func TestDumpStartOffset(t *testing.T) {
	data := []byte{0xAB}
	options := DefaultOptions()
	options.StartOffset = 0x10

	out := Dump(data, options)
	if !strings.Contains(out, "00000010") {
		t.Fatalf("expected offset 0x10 in output, got %q", out)
	}
}

func TestDumpMaxLinesTruncates(t *testing.T) {
	data := make([]byte, 64)
	options := DefaultOptions()
	options.MaxLines = 1

	out := Dump(data, options)
	if !strings.Contains(out, "more bytes") {
		t.Fatalf("expected truncation notice, got %q", out)
	}
}

func TestHexdumpBasicHighlightsPattern(t *testing.T) {
	data := []byte{0x11, 0xDE, 0xAD, 0xBE, 0xEF, 0x22}
	out := HexdumpBasic(data, 0, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	if !strings.Contains(out, "de") || !strings.Contains(out, "ad") {
		t.Fatalf("expected highlighted pattern bytes in output: %q", out)
	}
	// The highlight uses a background color, which plain bytes don't; the
	// first and last pattern bytes both carry it in the hex column.
	highlighted := func(s string) string { return coloransi.Color(coloransi.Black, coloransi.Yellow, s) }
	if !strings.Contains(out, highlighted("de")) || !strings.Contains(out, highlighted("ef")) {
		t.Fatalf("expected highlighted pattern bytes in output: %q", out)
	}
}

func TestFormatASCIINonPrintableAsDot(t *testing.T) {
	data := []byte{0x00, 0x01, 'A'}
	out := HexdumpBasic(data, 0, nil)

	if !strings.Contains(out, "A") {
		t.Fatalf("expected printable byte in ASCII column: %q", out)
	}
	if !strings.Contains(out, coloransi.Foreground(coloransi.Red, ".")) {
		t.Fatalf("expected non-printable byte as a red dot: %q", out)
	}
}
