package wave

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadRecord parses a 5-line wave record: amplitude, direction.x,
// direction.y, frequency, phase. Extra trailing lines are ignored.
func ReadRecord(r io.Reader) (Wave, error) {
	var w Wave
	scanner := bufio.NewScanner(r)
	for _, f := range Fields {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Wave{}, fmt.Errorf("%w: reading %s: %w", ErrRecordUnavailable, f, err)
			}
			return Wave{}, fmt.Errorf("%w: missing %s", ErrRecordUnavailable, f)
		}
		line := strings.TrimSpace(scanner.Text())
		v, err := strconv.ParseFloat(line, 32)
		if err != nil {
			return Wave{}, fmt.Errorf("%w: parsing %s %q", ErrRecordUnavailable, f, line)
		}
		w = w.With(f, float32(v))
	}
	return w, nil
}

// WriteRecord writes w in the format read by ReadRecord.
func WriteRecord(dst io.Writer, w Wave) error {
	bw := bufio.NewWriter(dst)
	for _, f := range Fields {
		bw.WriteString(strconv.FormatFloat(float64(w.Value(f)), 'g', -1, 32))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
