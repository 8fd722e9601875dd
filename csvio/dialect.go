// Package csvio supplies the record source and sink for delimited text
// streams: dialect detection, a streaming reader with header awareness, and
// a splitter that routes valid and invalid records to separate outputs.
package csvio

import (
	"bufio"
	"bytes"
)

// Dialect describes how a delimited file is shaped. Quoting always follows
// RFC 4180 double quotes, the only convention encoding/csv parses.
type Dialect struct {
	Delimiter rune
	HasHeader bool
}

// DefaultDialect is comma-separated with no header.
func DefaultDialect() Dialect {
	return Dialect{Delimiter: ','}
}

// candidate delimiters, most common first.
var candidates = []rune{',', '\t', ';', '|', ':'}

// SniffDialect guesses the delimiter from a sample by scoring each candidate
// on per-line consistency: the winner appears the same nonzero number of
// times on every sampled line. Ties fall back to candidate order.
func SniffDialect(sample []byte) Dialect {
	d := DefaultDialect()

	var lines [][]byte
	sc := bufio.NewScanner(bytes.NewReader(sample))
	for sc.Scan() && len(lines) < 20 {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		line := make([]byte, len(sc.Bytes()))
		copy(line, sc.Bytes())
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return d
	}

	bestCount := 0
	for _, c := range candidates {
		count := bytes.Count(lines[0], []byte(string(c)))
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if bytes.Count(line, []byte(string(c))) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			bestCount = count
			d.Delimiter = c
		}
	}
	return d
}
