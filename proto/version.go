package proto

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the protocol version announced in the connection banner.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is greater than or equal to major.minor.patch.
func (v Version) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

// ParseBanner decodes "OK MPD <major>.<minor>.<patch>". The patch level is
// optional.
func ParseBanner(line string) (Version, error) {
	text, ok := strings.CutPrefix(line, BannerPrefix)
	if !ok {
		return Version{}, &ProtocolError{Kind: KindBadBanner, Line: line}
	}

	parts := strings.Split(text, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, &ProtocolError{Kind: KindBadBanner, Line: line}
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, &ProtocolError{Kind: KindBadBanner, Line: line, Err: err}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
