// Command bytescan scans a file for an array-of-bytes pattern and prints
// every match offset, with an optional hex-dump of the surrounding bytes.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"

	"bytescan"
	"bytescan/hexdump"
	"bytescan/pod"
)

func main() {
	pathFlag := flag.String("file", "", "path to the file to scan")
	aobFlag := flag.String("aob", "", "array of bytes to scan for, e.g. '00,ba,ad,??,f0'")
	maxFlag := flag.Int("max", 256, "maximum number of matches to report")
	contextFlag := flag.Uint("context", 16, "bytes of context to dump before and after each match")
	timeoutFlag := flag.Duration("timeout", 0, "abort the scan after this long (0 disables the timeout)")
	flag.Parse()

	if *pathFlag == "" {
		fmt.Fprintln(os.Stderr, "error: -file is required")
		flag.Usage()
		os.Exit(1)
	}
	if *aobFlag == "" {
		fmt.Fprintln(os.Stderr, "error: -aob is required")
		flag.Usage()
		os.Exit(1)
	}

	pattern, mask, err := parseAOB(*aobFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing -aob: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("scanning %s for pattern %s\n", *pathFlag, formatPattern(pattern, mask))

	matches, err := runScan(*pathFlag, pattern, mask, *maxFlag, *timeoutFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("found %d match(es)\n", len(matches))
	if len(matches) == 0 {
		return
	}

	table := pod.NewTable(
		pod.ColumnSpec{Header: "#"},
		pod.ColumnSpec{
			Header:     "offset",
			FormatFunc: func(v string) string { return coloransi.Foreground(coloransi.Green, v) },
		},
	)
	for i, m := range matches {
		table.AddRow(strconv.Itoa(i), fmt.Sprintf("0x%x", m))
	}
	if len(matches) == *maxFlag {
		// Invariant 5: the core stops at maxMatches, so the true count may
		// be larger than what is printed here.
		table.AddSeparator()
		table.AddRow("", "-max reached, more matches may exist")
	}
	_ = table.Render(os.Stdout)

	if *contextFlag > 0 {
		dumpMatches(*pathFlag, matches, pattern, uint64(*contextFlag))
	}
}

func runScan(path string, pattern, mask []byte, max int, timeout time.Duration) ([]uint64, error) {
	if timeout <= 0 {
		return bytescan.ScanAOB(path, pattern, mask, max)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	outcome := <-bytescan.ScanAsync(ctx, path, pattern, mask, max)
	return outcome.Matches, outcome.Err
}

func dumpMatches(path string, matches []uint64, pattern []byte, ctxBytes uint64) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not re-read %s for context dump: %v\n", path, err)
		return
	}

	for _, m := range matches {
		start := uint64(0)
		if m > ctxBytes {
			start = m - ctxBytes
		}
		end := m + uint64(len(pattern)) + ctxBytes
		if end > uint64(len(data)) {
			end = uint64(len(data))
		}

		fmt.Printf("\nmatch at 0x%x:\n", m)
		fmt.Println(hexdump.HexdumpBasic(data[start:end], start, pattern))
	}
}

// parseAOB parses a comma- or space-separated AOB string such as
// "00,ba,ad,??,f0" into a pattern and a same-length mask (0x00 marks a
// wildcard byte, 0xFF marks an exact-match byte).
func parseAOB(aob string) ([]byte, []byte, error) {
	parts := strings.FieldsFunc(aob, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(parts) == 0 {
		return nil, nil, fmt.Errorf("empty pattern")
	}

	pattern := make([]byte, len(parts))
	mask := make([]byte, len(parts))
	wildcard := false

	for i, part := range parts {
		if part == "??" || part == "?" {
			wildcard = true
			continue
		}
		val, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid hex byte %q: %w", part, err)
		}
		pattern[i] = byte(val)
		mask[i] = 0xFF
	}

	if !wildcard {
		return pattern, nil, nil
	}
	return pattern, mask, nil
}

func formatPattern(pattern, mask []byte) string {
	var sb strings.Builder
	for i, b := range pattern {
		if i > 0 {
			sb.WriteString(" ")
		}
		if mask != nil && mask[i] == 0 {
			sb.WriteString("??")
		} else {
			sb.WriteString(hex.EncodeToString([]byte{b}))
		}
	}
	return sb.String()
}
