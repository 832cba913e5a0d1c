package entities

import "encoding/json"

// DependencyState is the position of a dependency in the comparison state machine.
type DependencyState int

const (
	StatePending DependencyState = iota
	StateRangeParsed
	StatePolicyResolved
	StateCompared
	StateFailed
)

func (s DependencyState) String() string {
	switch s {
	case StateRangeParsed:
		return "range-parsed"
	case StatePolicyResolved:
		return "policy-resolved"
	case StateCompared:
		return "compared"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// ComparisonStatus summarizes a result for reporters.
type ComparisonStatus string

const (
	StatusUpToDate ComparisonStatus = "up-to-date"
	StatusOutdated ComparisonStatus = "outdated"
	StatusUnknown  ComparisonStatus = "unknown"
	StatusFailed   ComparisonStatus = "failed"
)

// ComparisonResult is the outcome of comparing one dependency with the registry.
// Referenced and Latest are nil when unknown; Err is set only in StateFailed.
type ComparisonResult struct {
	Name              string
	VersionRange      string
	Referenced        *Version
	Latest            *Version
	Outdated          bool
	IncludePrerelease bool
	LatestInRange     bool
	State             DependencyState
	Err               error
}

// Status derives the reporter-facing status of the result.
func (r ComparisonResult) Status() ComparisonStatus {
	switch {
	case r.State == StateFailed:
		return StatusFailed
	case r.Latest == nil:
		return StatusUnknown
	case r.Outdated:
		return StatusOutdated
	default:
		return StatusUpToDate
	}
}

// MarshalJSON flattens the error and state into strings.
func (r ComparisonResult) MarshalJSON() ([]byte, error) {
	var errText string
	if r.Err != nil {
		errText = r.Err.Error()
	}
	return json.Marshal(struct {
		Name              string           `json:"name"`
		VersionRange      string           `json:"version_range"`
		Referenced        *Version         `json:"referenced_version"`
		Latest            *Version         `json:"latest_version"`
		Outdated          bool             `json:"outdated"`
		IncludePrerelease bool             `json:"include_prerelease"`
		LatestInRange     bool             `json:"latest_in_range"`
		Status            ComparisonStatus `json:"status"`
		Error             string           `json:"error,omitempty"`
	}{
		Name:              r.Name,
		VersionRange:      r.VersionRange,
		Referenced:        r.Referenced,
		Latest:            r.Latest,
		Outdated:          r.Outdated,
		IncludePrerelease: r.IncludePrerelease,
		LatestInRange:     r.LatestInRange,
		Status:            r.Status(),
		Error:             errText,
	})
}

// FrameworkReport holds the ordered results of one target framework.
type FrameworkReport struct {
	Moniker string             `json:"target_framework"`
	Results []ComparisonResult `json:"dependencies"`
}

// ProjectReport holds the framework reports of one project.
type ProjectReport struct {
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Frameworks []FrameworkReport `json:"target_frameworks"`
}

// Report is everything a run produced, in discovery order.
type Report struct {
	Projects []ProjectReport  `json:"projects"`
	Failures []ProjectFailure `json:"failures,omitempty"`
}

// OutdatedCount returns how many results are outdated across the report.
func (r *Report) OutdatedCount() int {
	count := 0
	for _, p := range r.Projects {
		for _, fw := range p.Frameworks {
			for _, res := range fw.Results {
				if res.Outdated {
					count++
				}
			}
		}
	}
	return count
}

// UncheckedCount returns how many results could not be compared, either because
// the lookup failed or because no eligible version was found.
func (r *Report) UncheckedCount() int {
	count := 0
	for _, p := range r.Projects {
		for _, fw := range p.Frameworks {
			for _, res := range fw.Results {
				if status := res.Status(); status == StatusFailed || status == StatusUnknown {
					count++
				}
			}
		}
	}
	return count
}

// MarshalJSON renders the failure error as text.
func (f ProjectFailure) MarshalJSON() ([]byte, error) {
	var errText string
	if f.Err != nil {
		errText = f.Err.Error()
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Path  string `json:"path"`
		Error string `json:"error"`
	}{Name: f.Name, Path: f.Path, Error: errText})
}
