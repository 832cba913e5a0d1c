package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// revisionPattern matches the NuGet four-part numeric form (major.minor.patch.revision).
var revisionPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)\.(\d+)$`)

// Version is a NuGet package version ordered by semantic-version precedence.
// The text it was parsed from is kept so a referenced version prints exactly
// as it was declared.
type Version struct {
	raw    string
	parsed *semver.Version
}

// ParseVersion parses a single version string such as "1.2.0", "1.2" or "2.0.0-beta.1".
// A trailing ".0" revision is accepted and ignored; any other revision is rejected
// because it has no place in semantic-version ordering.
func ParseVersion(raw string) (*Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("empty version")
	}
	if trimmed[0] == 'v' || trimmed[0] == 'V' {
		return nil, fmt.Errorf("invalid version %q: prefix %q is not allowed", trimmed, trimmed[:1])
	}

	normalized := trimmed
	numeric, suffix := splitSuffix(trimmed)
	if m := revisionPattern.FindStringSubmatch(numeric); m != nil {
		if strings.TrimLeft(m[2], "0") != "" {
			return nil, fmt.Errorf("version %q has a non-zero revision component", trimmed)
		}
		normalized = m[1] + suffix
	}

	parsed, err := semver.NewVersion(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", trimmed, err)
	}
	return &Version{raw: trimmed, parsed: parsed}, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(raw string) *Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// splitSuffix separates the numeric part of a version from its "-pre" / "+build" tail.
func splitSuffix(s string) (string, string) {
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// String returns the version as it was written.
func (v *Version) String() string {
	return v.raw
}

// Normalized returns the canonical major.minor.patch[-pre][+build] form.
func (v *Version) Normalized() string {
	return v.parsed.String()
}

// IsPrerelease reports whether the version carries a pre-release label.
func (v *Version) IsPrerelease() bool {
	return v.parsed.Prerelease() != ""
}

// Compare returns -1, 0 or +1 when v is lower, equal or greater than other.
// Build metadata does not take part in the ordering.
func (v *Version) Compare(other *Version) int {
	return v.parsed.Compare(other.parsed)
}

// GreaterThan reports whether v orders strictly above other.
func (v *Version) GreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// MarshalJSON renders the version as its declared text.
func (v *Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// SelectLatest returns the greatest eligible version, or nil when none qualifies.
// Stable versions are always eligible; pre-releases only when includePrerelease is set.
// On equal precedence a stable version wins over a pre-release one.
func SelectLatest(versions []*Version, includePrerelease bool) *Version {
	var latest *Version
	for _, candidate := range versions {
		if candidate == nil {
			continue
		}
		if candidate.IsPrerelease() && !includePrerelease {
			continue
		}
		if latest == nil {
			latest = candidate
			continue
		}
		switch c := candidate.Compare(latest); {
		case c > 0:
			latest = candidate
		case c == 0 && latest.IsPrerelease() && !candidate.IsPrerelease():
			latest = candidate
		}
	}
	return latest
}
