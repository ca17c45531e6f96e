package tool

import (
	"fmt"
	"strings"
	"unicode"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanSize formats a byte count with binary prefixes and two decimals.
func HumanSize(size int64) string {
	if size <= 0 {
		return "0B"
	}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// DisplayName turns a raw stored file name into something readable on the
// watch page: separators become spaces and words are title-cased.
func DisplayName(name string) string {
	replaced := strings.NewReplacer("_", " ", ".", " ", "-", " ").Replace(name)
	fields := strings.Fields(replaced)
	for i, f := range fields {
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
