package projectfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

const (
	analyzerName          = "static"
	directoryBuildProps   = "Directory.Build.props"
	directoryPackagesProp = "Directory.Packages.props"
)

// AnalyzerRepository reads project files directly, without the .NET toolchain.
// Only conditions on $(TargetFramework) are evaluated; groups and items with any
// other condition are skipped. Directory.Build.props contributes inherited items
// and Directory.Packages.props supplies centrally managed versions.
type AnalyzerRepository struct{}

var _ repositories.ProjectAnalyzerRepository = (*AnalyzerRepository)(nil)

// NewAnalyzerRepository creates the static project file analyzer.
func NewAnalyzerRepository() repositories.ProjectAnalyzerRepository {
	return &AnalyzerRepository{}
}

func (a *AnalyzerRepository) Name() string { return analyzerName }

// Available is always true; the analyzer needs nothing beyond the filesystem.
func (a *AnalyzerRepository) Available() bool { return true }

// Analyze reads a project file, or every project a solution lists. A project
// inside a solution that cannot be read is logged and skipped.
func (a *AnalyzerRepository) Analyze(ctx context.Context, projectFile string) ([]entities.RawProject, error) {
	if !IsSolutionFile(projectFile) {
		raw, err := analyzeProject(projectFile)
		if err != nil {
			return nil, err
		}
		return []entities.RawProject{raw}, nil
	}

	paths, err := solutionProjects(projectFile)
	if err != nil {
		return nil, err
	}
	logger.Debugf("[static] Solution %s lists %d projects", projectFile, len(paths))

	raws := make([]entities.RawProject, 0, len(paths))
	for _, path := range paths {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		raw, projectErr := analyzeProject(path)
		if projectErr != nil {
			logger.Warnf("[static] Skipping project: %v", projectErr)
			continue
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func analyzeProject(path string) (entities.RawProject, error) {
	raw := entities.RawProject{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}

	project, err := readProjectXML(path)
	if err != nil {
		return raw, err
	}

	dir := filepath.Dir(path)
	var inherited *projectXML
	if propsPath := findUpwards(dir, directoryBuildProps); propsPath != "" {
		logger.Debugf("[static] Importing %s", propsPath)
		if inherited, err = readProjectXML(propsPath); err != nil {
			logger.Warnf("[static] Ignoring %s: %v", propsPath, err)
			inherited = nil
		}
	}

	central := map[string]string{}
	if packagesPath := findUpwards(dir, directoryPackagesProp); packagesPath != "" {
		central, err = readCentralVersions(packagesPath)
		if err != nil {
			logger.Warnf("[static] Ignoring %s: %v", packagesPath, err)
		}
	}

	var groups []propertyGroup
	if inherited != nil {
		groups = append(groups, inherited.PropertyGroups...)
		raw.Items = append(raw.Items, collectItems(inherited.ItemGroups, central, true)...)
	}
	groups = append(groups, project.PropertyGroups...)
	raw.TargetFrameworks = targetFrameworks(groups)
	raw.Items = append(raw.Items, collectItems(project.ItemGroups, central, false)...)

	logger.Debugf(
		"[static] %s: %d frameworks, %d items",
		raw.Name, len(raw.TargetFrameworks), len(raw.Items),
	)
	return raw, nil
}

// targetFrameworks applies MSBuild's last-assignment-wins rule; TargetFrameworks
// takes precedence over TargetFramework when both are set.
func targetFrameworks(groups []propertyGroup) []string {
	var single, multi string
	for _, group := range groups {
		if strings.TrimSpace(group.Condition) != "" {
			continue
		}
		if group.TargetFramework != "" {
			single = group.TargetFramework
		}
		if group.TargetFrameworks != "" {
			multi = group.TargetFrameworks
		}
	}
	if multi != "" {
		return splitFrameworks(multi)
	}
	return splitFrameworks(single)
}

func collectItems(groups []itemGroup, central map[string]string, imported bool) []entities.RawItem {
	var items []entities.RawItem
	for _, group := range groups {
		groupFramework, ok := conditionFramework(group.Condition)
		if !ok {
			logger.Debugf("[static] Skipping item group with condition %q", group.Condition)
			continue
		}

		for _, ref := range group.PackageReferences {
			item, keep := toRawItem(entities.RawItemPackageReference, ref, groupFramework)
			if !keep {
				continue
			}
			if item.VersionRange == "" {
				item.VersionRange = central[strings.ToLower(item.Name)]
			}
			item.Imported = item.Imported || imported
			items = append(items, item)
		}
		for _, ref := range group.ProjectReferences {
			if item, keep := toRawItem(entities.RawItemProjectReference, ref, groupFramework); keep {
				items = append(items, item)
			}
		}
		for _, ref := range group.FrameworkReferences {
			if item, keep := toRawItem(entities.RawItemFrameworkReference, ref, groupFramework); keep {
				item.Imported = item.Imported || imported
				items = append(items, item)
			}
		}
	}
	return items
}

func toRawItem(kind entities.RawItemKind, ref referenceItem, groupFramework string) (entities.RawItem, bool) {
	if ref.Include == "" {
		// Update items modify references declared elsewhere
		return entities.RawItem{}, false
	}

	itemFramework, ok := conditionFramework(ref.Condition)
	if !ok {
		logger.Debugf("[static] Skipping %s with condition %q", ref.Include, ref.Condition)
		return entities.RawItem{}, false
	}
	if groupFramework != "" && itemFramework != "" && !strings.EqualFold(groupFramework, itemFramework) {
		return entities.RawItem{}, false
	}
	framework := groupFramework
	if framework == "" {
		framework = itemFramework
	}

	return entities.RawItem{
		Kind:            kind,
		Name:            strings.TrimSpace(ref.Include),
		VersionRange:    ref.version(),
		TargetFramework: framework,
		Imported:        ref.implicit(),
	}, true
}

func readCentralVersions(path string) (map[string]string, error) {
	versions := map[string]string{}
	props, err := readProjectXML(path)
	if err != nil {
		return versions, err
	}
	for _, group := range props.ItemGroups {
		for _, pkg := range group.PackageVersions {
			if pkg.Include != "" {
				versions[strings.ToLower(strings.TrimSpace(pkg.Include))] = pkg.version()
			}
		}
	}
	return versions, nil
}

// findUpwards returns the first file named name in dir or one of its parents.
func findUpwards(dir, name string) string {
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		} else if !errors.Is(err, os.ErrNotExist) {
			logger.Debugf("[static] Cannot stat %s: %v", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
