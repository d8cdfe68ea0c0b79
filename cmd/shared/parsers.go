package shared

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseSize parses a terminal size string in the format "COLSxROWS",
// e.g. "120x40". Both dimensions must be positive. Returns the columns,
// rows, and any parsing error. Whether the dimensions are large enough
// for a usable terminal is checked by config validation, not here.
func ParseSize(s string) (cols int, rows int, err error) {
	re := regexp.MustCompile(`^(\d+)x(\d+)$`)
	matches := re.FindStringSubmatch(s)

	if len(matches) != 3 {
		err = parsingError(s)
		return
	}

	cols, err = strconv.Atoi(matches[1])
	if err != nil || cols < 1 {
		err = parsingError(s)
		return
	}

	rows, err = strconv.Atoi(matches[2])
	if err != nil || rows < 1 {
		err = parsingError(s)
		return
	}

	return
}

func parsingError(s string) error {
	return fmt.Errorf("parsing %s: format should be 'COLSxROWS', e.g. 120x40", s)
}
