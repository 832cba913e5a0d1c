package entities

import (
	"strings"

	logger "github.com/sirupsen/logrus"
)

// BuildProject turns the raw declarations of one project into its
// Project -> TargetFramework -> Dependency tree.
//
// Only direct package references that were not imported are kept. An item
// scoped to a target framework lands under that framework only; an unscoped
// item applies to every framework of the project. Names are unique per
// framework (NuGet IDs are case-insensitive) and the first declaration wins.
func BuildProject(raw RawProject) (Project, error) {
	project := Project{Name: raw.Name, Path: raw.Path}

	index := make(map[string]int, len(raw.TargetFrameworks))
	for _, moniker := range raw.TargetFrameworks {
		moniker = strings.TrimSpace(moniker)
		if moniker == "" {
			continue
		}
		key := strings.ToLower(moniker)
		if _, seen := index[key]; seen {
			continue
		}
		index[key] = len(project.TargetFrameworks)
		project.TargetFrameworks = append(project.TargetFrameworks, TargetFramework{Moniker: moniker})
	}

	if len(project.TargetFrameworks) == 0 {
		return Project{}, &ProjectStructureError{
			Project: projectLabel(raw),
			Reason:  "no target frameworks declared",
		}
	}

	seen := make([]map[string]bool, len(project.TargetFrameworks))
	for i := range seen {
		seen[i] = make(map[string]bool)
	}

	add := func(fw int, item RawItem) {
		key := strings.ToLower(item.Name)
		if seen[fw][key] {
			logger.Debugf(
				"[graph] %s: duplicate reference %q for %s ignored",
				project.Name, item.Name, project.TargetFrameworks[fw].Moniker,
			)
			return
		}
		seen[fw][key] = true
		project.TargetFrameworks[fw].Dependencies = append(
			project.TargetFrameworks[fw].Dependencies,
			Dependency{Name: item.Name, VersionRange: item.VersionRange},
		)
	}

	for _, item := range raw.Items {
		if item.Kind != RawItemPackageReference || item.Imported || strings.TrimSpace(item.Name) == "" {
			continue
		}

		if item.TargetFramework == "" {
			for fw := range project.TargetFrameworks {
				add(fw, item)
			}
			continue
		}

		fw, ok := index[strings.ToLower(strings.TrimSpace(item.TargetFramework))]
		if !ok {
			logger.Debugf(
				"[graph] %s: reference %q targets undeclared framework %q, ignored",
				project.Name, item.Name, item.TargetFramework,
			)
			continue
		}
		add(fw, item)
	}

	return project, nil
}

// BuildProjects builds every raw project. A structural failure only drops the
// offending project; the others are still returned, in input order.
func BuildProjects(raws []RawProject) ([]Project, []ProjectFailure) {
	projects := make([]Project, 0, len(raws))
	var failures []ProjectFailure
	for _, raw := range raws {
		project, err := BuildProject(raw)
		if err != nil {
			failures = append(failures, ProjectFailure{Name: raw.Name, Path: raw.Path, Err: err})
			continue
		}
		projects = append(projects, project)
	}
	return projects, failures
}

func projectLabel(raw RawProject) string {
	if raw.Name != "" {
		return raw.Name
	}
	return raw.Path
}
