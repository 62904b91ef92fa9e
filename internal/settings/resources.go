package settings

import (
	"errors"
	"strconv"
	"strings"
)

var errNoMultiClickTime = errors.New("no multiClickTime resource")

// multiClickTimeResource finds the multiClickTime entry in an X resource database
// string. Only global entries ("*multiClickTime", "multiClickTime") count; entries bound
// to one client class are ignored. The last match wins, as with xrdb merges.
func multiClickTimeResource(db string) (int64, error) {
	var (
		value int64
		found bool
	)
	for _, line := range strings.Split(db, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '!' {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key != "*multiClickTime" && key != "multiClickTime" {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		value, found = n, true
	}
	if !found {
		return 0, errNoMultiClickTime
	}
	return value, nil
}
