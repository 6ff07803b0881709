package ecckd

import (
	"strconv"
	"strings"
)

// ParsePath parses a derivation path such as "m/44'/0'/0'/0/7" into child
// indices.  Hardened components may be marked with ' or h.  The leading "m"
// is optional and a path of just "m" yields no indices.
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if parts[0] == "m" {
		parts = parts[1:]
	}

	res := make([]uint32, 0, len(parts))
	for _, p := range parts {
		var hardened bool
		if strings.HasSuffix(p, "'") || strings.HasSuffix(p, "h") || strings.HasSuffix(p, "H") {
			hardened = true
			p = p[:len(p)-1]
		}
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return nil, ErrInvalidPath
		}
		i, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return nil, ErrInvalidPath
		}
		if hardened {
			i |= HardenedBit
		}
		res = append(res, uint32(i))
	}
	return res, nil
}
