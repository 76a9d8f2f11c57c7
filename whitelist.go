package barcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shenwei356/xopen"
)

// ErrInvalidWhitelist is returned for empty whitelists, entries of mixed
// length and entries with symbols outside Alphabet.
var ErrInvalidWhitelist = errors.New("invalid whitelist")

// ReadWhitelist loads a whitelist file, gzipped or plain, one entry per line.
func ReadWhitelist(filename string) ([]string, error) {
	fh, err := xopen.Ropen(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	wl, err := ParseWhitelist(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return wl, nil
}

// ParseWhitelist reads entries from r. Blank lines and lines starting with
// '#' are skipped, entries are upper-cased and duplicates dropped.
func ParseWhitelist(r io.Reader) ([]string, error) {
	var wl []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		bc := strings.ToUpper(line)
		if seen[bc] {
			continue
		}
		seen[bc] = true
		wl = append(wl, bc)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return wl, ValidateWhitelist(wl)
}

// ValidateWhitelist checks that entries is non-empty, that every entry has
// the same length and that only Alphabet symbols are used.
func ValidateWhitelist(entries []string) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidWhitelist)
	}
	length := len(entries[0])
	if length == 0 {
		return fmt.Errorf("%w: empty entry", ErrInvalidWhitelist)
	}
	for _, bc := range entries {
		if len(bc) != length {
			return fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidWhitelist, bc, len(bc), length)
		}
		for i := 0; i < len(bc); i++ {
			switch bc[i] {
			case 'A', 'C', 'G', 'T', 'N':
			default:
				return fmt.Errorf("%w: %q has symbol %q", ErrInvalidWhitelist, bc, bc[i])
			}
		}
	}
	return nil
}
