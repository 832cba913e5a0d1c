package projectfile

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// solutionProjectPattern matches `Project("{type}") = "Name", "rel\path.csproj", "{guid}"`.
var solutionProjectPattern = regexp.MustCompile(
	`^Project\("\{[^}]+\}"\)\s*=\s*"[^"]*"\s*,\s*"([^"]+)"`,
)

// IsProjectFile reports whether path names a .NET project file.
func IsProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj", ".fsproj", ".vbproj":
		return true
	}
	return false
}

// IsSolutionFile reports whether path names a solution file.
func IsSolutionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sln", ".slnx":
		return true
	}
	return false
}

// solutionProjects returns the absolute paths of the projects a solution lists,
// in the order the solution lists them. Solution folders and other entries are skipped.
func solutionProjects(solutionPath string) ([]string, error) {
	file, err := os.Open(solutionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open solution %s: %w", solutionPath, err)
	}
	defer file.Close()

	var relative []string
	if strings.EqualFold(filepath.Ext(solutionPath), ".slnx") {
		relative, err = readSlnx(file)
	} else {
		relative, err = readSln(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse solution %s: %w", solutionPath, err)
	}

	dir := filepath.Dir(solutionPath)
	projects := make([]string, 0, len(relative))
	for _, rel := range relative {
		rel = strings.ReplaceAll(rel, `\`, string(filepath.Separator))
		if !IsProjectFile(rel) {
			continue
		}
		projects = append(projects, filepath.Join(dir, rel))
	}
	return projects, nil
}

func readSln(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		match := solutionProjectPattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if match != nil {
			paths = append(paths, match[1])
		}
	}
	return paths, scanner.Err()
}

// readSlnx walks the XML solution format, where projects may be nested in folders.
func readSlnx(r io.Reader) ([]string, error) {
	var paths []string
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return paths, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "Project" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "Path" {
				paths = append(paths, attr.Value)
			}
		}
	}
}
