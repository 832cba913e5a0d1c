package projectfile

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// projectXML mirrors the parts of an SDK-style project file the analyzer reads.
type projectXML struct {
	XMLName        xml.Name        `xml:"Project"`
	PropertyGroups []propertyGroup `xml:"PropertyGroup"`
	ItemGroups     []itemGroup     `xml:"ItemGroup"`
}

type propertyGroup struct {
	Condition        string `xml:"Condition,attr"`
	TargetFramework  string `xml:"TargetFramework"`
	TargetFrameworks string `xml:"TargetFrameworks"`
}

type itemGroup struct {
	Condition           string          `xml:"Condition,attr"`
	PackageReferences   []referenceItem `xml:"PackageReference"`
	ProjectReferences   []referenceItem `xml:"ProjectReference"`
	FrameworkReferences []referenceItem `xml:"FrameworkReference"`
	PackageVersions     []referenceItem `xml:"PackageVersion"`
}

type referenceItem struct {
	Include             string `xml:"Include,attr"`
	Update              string `xml:"Update,attr"`
	Condition           string `xml:"Condition,attr"`
	VersionAttr         string `xml:"Version,attr"`
	VersionElem         string `xml:"Version"`
	VersionOverride     string `xml:"VersionOverride,attr"`
	IsImplicitlyDefined string `xml:"IsImplicitlyDefined,attr"`
}

func (r referenceItem) version() string {
	switch {
	case r.VersionOverride != "":
		return strings.TrimSpace(r.VersionOverride)
	case r.VersionAttr != "":
		return strings.TrimSpace(r.VersionAttr)
	default:
		return strings.TrimSpace(r.VersionElem)
	}
}

func (r referenceItem) implicit() bool {
	return strings.EqualFold(strings.TrimSpace(r.IsImplicitlyDefined), "true")
}

// frameworkConditionPattern matches `'$(TargetFramework)' == 'net8.0'` in either operand order.
var frameworkConditionPattern = regexp.MustCompile(
	`(?i)^\s*(?:'\$\(TargetFramework\)'\s*==\s*'([^']+)'|'([^']+)'\s*==\s*'\$\(TargetFramework\)')\s*$`,
)

// conditionFramework returns the framework a condition scopes to. ok is false for
// conditions the analyzer cannot evaluate statically.
func conditionFramework(condition string) (string, bool) {
	if strings.TrimSpace(condition) == "" {
		return "", true
	}
	match := frameworkConditionPattern.FindStringSubmatch(condition)
	if match == nil {
		return "", false
	}
	if match[1] != "" {
		return match[1], true
	}
	return match[2], true
}

func readProjectXML(path string) (*projectXML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var project projectXML
	if err = xml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &project, nil
}

// splitFrameworks splits a semicolon separated TargetFrameworks value.
func splitFrameworks(value string) []string {
	var monikers []string
	for _, part := range strings.Split(value, ";") {
		if moniker := strings.TrimSpace(part); moniker != "" {
			monikers = append(monikers, moniker)
		}
	}
	return monikers
}
