package entities

import "strings"

// PrereleaseSetting controls whether pre-release versions are candidates for "latest".
type PrereleaseSetting int

const (
	// PrereleaseAuto includes pre-releases only when the referenced version is one.
	PrereleaseAuto PrereleaseSetting = iota
	// PrereleaseAlways always includes pre-releases.
	PrereleaseAlways
	// PrereleaseNever never includes pre-releases.
	PrereleaseNever
)

// PrereleaseSettingNames lists the accepted textual values, in flag-help order.
var PrereleaseSettingNames = []string{"auto", "always", "never"} //nolint:gochecknoglobals // enum names

// ParsePrereleaseSetting parses "auto", "always" or "never" (case-insensitive).
func ParsePrereleaseSetting(value string) (PrereleaseSetting, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "auto":
		return PrereleaseAuto, nil
	case "always":
		return PrereleaseAlways, nil
	case "never":
		return PrereleaseNever, nil
	default:
		return PrereleaseAuto, &InvalidOptionError{
			Option:  "prerelease",
			Value:   value,
			Allowed: PrereleaseSettingNames,
		}
	}
}

func (s PrereleaseSetting) String() string {
	switch s {
	case PrereleaseAlways:
		return "always"
	case PrereleaseNever:
		return "never"
	default:
		return "auto"
	}
}

// ResolveEligibility decides whether pre-release candidates are eligible for a
// dependency referencing the given version. The referenced version must be known.
func ResolveEligibility(setting PrereleaseSetting, referenced *Version) bool {
	if referenced == nil {
		panic("entities: ResolveEligibility called without a referenced version")
	}
	switch setting {
	case PrereleaseAlways:
		return true
	case PrereleaseNever:
		return false
	default:
		return referenced.IsPrerelease()
	}
}
