package entities

import (
	"strconv"
	"strings"
)

const (
	floatWildcard    = "*"
	lowestPrerelease = "0"
)

// VersionRange is a parsed NuGet version range. The minimum bound (the floor) is
// always present; it is the "referenced version" a dependency is compared from.
type VersionRange struct {
	raw          string
	min          *Version
	minInclusive bool
	max          *Version
	maxInclusive bool
	floating     bool
}

// ParseVersionRange parses the NuGet range grammar:
//
//	1.2.0           minimum inclusive, open ended
//	1.*, 1.0.0-b*   floating, floored at the lowest admitted version
//	[1.2.0]         exact
//	[1.0, 2.0)      interval with inclusive "[" / exclusive "(" bounds
//
// Ranges with no lower bound, such as "(, 2.0]", are rejected because no
// referenced version can be derived from them.
func ParseVersionRange(raw string) (*VersionRange, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, malformed(raw, "empty range", nil)
	}
	if trimmed[0] == '[' || trimmed[0] == '(' {
		return parseInterval(raw, trimmed)
	}
	if strings.Contains(trimmed, floatWildcard) {
		return parseFloating(raw, trimmed)
	}

	v, err := ParseVersion(trimmed)
	if err != nil {
		return nil, malformed(raw, "invalid version", err)
	}
	return &VersionRange{raw: raw, min: v, minInclusive: true}, nil
}

func parseInterval(raw, trimmed string) (*VersionRange, error) {
	closing := trimmed[len(trimmed)-1]
	if len(trimmed) < 2 || (closing != ']' && closing != ')') {
		return nil, malformed(raw, "missing closing bracket", nil)
	}
	r := &VersionRange{
		raw:          raw,
		minInclusive: trimmed[0] == '[',
		maxInclusive: closing == ']',
	}

	parts := strings.Split(trimmed[1:len(trimmed)-1], ",")
	switch len(parts) {
	case 1:
		if !r.minInclusive || !r.maxInclusive {
			return nil, malformed(raw, "exact version must use inclusive brackets", nil)
		}
		v, err := ParseVersion(parts[0])
		if err != nil {
			return nil, malformed(raw, "invalid version", err)
		}
		r.min, r.max = v, v
		return r, nil
	case 2:
	default:
		return nil, malformed(raw, "expected at most one comma", nil)
	}

	lower, upper := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lower == "" {
		return nil, malformed(raw, "range has no lower bound", nil)
	}
	minVersion, err := ParseVersion(lower)
	if err != nil {
		return nil, malformed(raw, "invalid lower bound", err)
	}
	r.min = minVersion

	if upper != "" {
		maxVersion, maxErr := ParseVersion(upper)
		if maxErr != nil {
			return nil, malformed(raw, "invalid upper bound", maxErr)
		}
		switch c := minVersion.Compare(maxVersion); {
		case c > 0:
			return nil, malformed(raw, "lower bound is greater than upper bound", nil)
		case c == 0 && !(r.minInclusive && r.maxInclusive):
			return nil, malformed(raw, "range is empty", nil)
		}
		r.max = maxVersion
	}
	return r, nil
}

// parseFloating handles "*", "1.*", "1.2.*", "1.0.0-*", "1.0.0-beta*" and "*-*".
func parseFloating(raw, trimmed string) (*VersionRange, error) {
	numeric, suffix := splitSuffix(trimmed)

	segments := strings.Split(numeric, ".")
	fixed := segments
	numericFloat := false
	if segments[len(segments)-1] == floatWildcard {
		fixed = segments[:len(segments)-1]
		numericFloat = true
	}
	if len(fixed) > 3 {
		return nil, malformed(raw, "too many version segments", nil)
	}
	for _, seg := range fixed {
		if _, err := strconv.Atoi(seg); err != nil {
			return nil, malformed(raw, "wildcard must be the last version segment", nil)
		}
	}

	prerelease := strings.TrimPrefix(suffix, "-")
	if strings.Contains(prerelease, floatWildcard) {
		if !strings.HasSuffix(prerelease, floatWildcard) || strings.Count(prerelease, floatWildcard) > 1 {
			return nil, malformed(raw, "wildcard must end the pre-release label", nil)
		}
		prerelease = strings.TrimRight(strings.TrimSuffix(prerelease, floatWildcard), ".-")
		if prerelease == "" {
			prerelease = lowestPrerelease
		}
	} else if numericFloat && suffix != "" {
		return nil, malformed(raw, "pre-release label cannot follow a numeric wildcard", nil)
	} else if !numericFloat {
		return nil, malformed(raw, "misplaced wildcard", nil)
	}

	floorSegments := make([]string, 3)
	for i := range floorSegments {
		floorSegments[i] = "0"
		if i < len(fixed) {
			floorSegments[i] = fixed[i]
		}
	}
	floorText := strings.Join(floorSegments, ".")
	if suffix != "" {
		floorText += "-" + prerelease
	}

	floor, err := ParseVersion(floorText)
	if err != nil {
		return nil, malformed(raw, "invalid floating version", err)
	}
	r := &VersionRange{raw: raw, min: floor, minInclusive: true, floating: true}

	if numericFloat && len(fixed) > 0 {
		ceiling, ceilErr := floatCeiling(fixed)
		if ceilErr != nil {
			return nil, malformed(raw, "invalid floating version", ceilErr)
		}
		r.max = ceiling
	}
	return r, nil
}

// floatCeiling returns the exclusive upper bound admitted by a numeric float:
// "1.*" stops below 2.0.0-0, "1.2.*" below 1.3.0-0.
func floatCeiling(fixed []string) (*Version, error) {
	segments := []int{0, 0, 0}
	for i, seg := range fixed {
		n, _ := strconv.Atoi(seg)
		segments[i] = n
	}
	last := len(fixed) - 1
	segments[last]++
	for i := last + 1; i < len(segments); i++ {
		segments[i] = 0
	}
	return ParseVersion(strconv.Itoa(segments[0]) + "." + strconv.Itoa(segments[1]) + "." +
		strconv.Itoa(segments[2]) + "-" + lowestPrerelease)
}

func malformed(raw, reason string, err error) *MalformedRangeError {
	return &MalformedRangeError{Range: raw, Reason: reason, Err: err}
}

// Floor returns the minimum bound, which is the referenced version.
func (r *VersionRange) Floor() *Version { return r.min }

// Ceiling returns the maximum bound, or nil for open-ended ranges.
func (r *VersionRange) Ceiling() *Version { return r.max }

// IsFloating reports whether the range was declared with a wildcard.
func (r *VersionRange) IsFloating() bool { return r.floating }

// String returns the range exactly as declared.
func (r *VersionRange) String() string { return r.raw }

// Contains reports whether v satisfies the range.
func (r *VersionRange) Contains(v *Version) bool {
	if v == nil {
		return false
	}
	if c := v.Compare(r.min); c < 0 || (c == 0 && !r.minInclusive) {
		return false
	}
	if r.max == nil {
		return true
	}
	c := v.Compare(r.max)
	return c < 0 || (c == 0 && r.maxInclusive)
}
