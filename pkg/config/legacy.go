package config

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// ReadLegacyFile returns the template directories listed in a legacy
// ~/.templatizer file. Blank lines and # comments are ignored. A
// missing file yields no directories.
func ReadLegacyFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	return parseLegacy(data), nil
}

func parseLegacy(data []byte) []string {
	var dirs []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dirs = append(dirs, line)
	}
	return dirs
}
