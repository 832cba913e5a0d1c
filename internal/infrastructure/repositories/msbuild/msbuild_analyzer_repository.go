package msbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

const (
	analyzerName  = "msbuild"
	dotnetBinary  = "dotnet"
	graphFileName = "restore.dg.json"
	packageTarget = "Package"
)

// commandRunner executes an external command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// AnalyzerRepository asks the .NET toolchain for the restore dependency graph
// (`dotnet msbuild -t:GenerateRestoreGraphFile`) and reads the evaluated
// PackageReference items from it. Evaluation means conditions, imports and
// central package management are already applied.
type AnalyzerRepository struct {
	run      commandRunner
	lookPath func(file string) (string, error)
}

var _ repositories.ProjectAnalyzerRepository = (*AnalyzerRepository)(nil)

// NewAnalyzerRepository creates the toolchain-backed analyzer.
func NewAnalyzerRepository() repositories.ProjectAnalyzerRepository {
	return &AnalyzerRepository{run: runCommand, lookPath: exec.LookPath}
}

func (a *AnalyzerRepository) Name() string { return analyzerName }

// Available returns true when the dotnet CLI is on PATH.
func (a *AnalyzerRepository) Available() bool {
	_, err := a.lookPath(dotnetBinary)
	return err == nil
}

// Analyze generates the restore graph for a project or solution file and converts it.
func (a *AnalyzerRepository) Analyze(ctx context.Context, projectFile string) ([]entities.RawProject, error) {
	tmpDir, err := os.MkdirTemp("", "outdated-msbuild-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	graphPath := filepath.Join(tmpDir, graphFileName)
	logger.Debugf("[msbuild] Generating restore graph for %s", projectFile)

	output, err := a.run(ctx, dotnetBinary,
		"msbuild", projectFile,
		"-t:GenerateRestoreGraphFile",
		"-p:RestoreGraphOutputPath="+graphPath,
		"-nologo",
		"-verbosity:quiet",
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to generate restore graph for %s: %w\n%s",
			projectFile, err, strings.TrimSpace(string(output)),
		)
	}

	data, err := os.ReadFile(graphPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read restore graph: %w", err)
	}
	return parseDependencyGraph(data)
}

// parseDependencyGraph converts a restore graph document into raw projects.
// Only the projects named under "restore" were requested; others in "projects"
// are referenced projects pulled into the closure. Object order is preserved,
// so dependencies keep their declaration order.
func parseDependencyGraph(data []byte) ([]entities.RawProject, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("restore graph is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	projects := make(map[string]gjson.Result)
	root.Get("projects").ForEach(func(key, value gjson.Result) bool {
		projects[key.String()] = value
		return true
	})

	var requested []string
	root.Get("restore").ForEach(func(key, _ gjson.Result) bool {
		requested = append(requested, key.String())
		return true
	})
	if len(requested) == 0 {
		return nil, errors.New("restore graph lists no projects to restore")
	}

	raws := make([]entities.RawProject, 0, len(requested))
	for _, uniqueName := range requested {
		project, ok := projects[uniqueName]
		if !ok {
			logger.Warnf("[msbuild] Project %s missing from restore graph", uniqueName)
			continue
		}
		raws = append(raws, toRawProject(uniqueName, project))
	}
	return raws, nil
}

func toRawProject(uniqueName string, project gjson.Result) entities.RawProject {
	restore := project.Get("restore")
	raw := entities.RawProject{
		Name: restore.Get("projectName").String(),
		Path: restore.Get("projectPath").String(),
	}
	if raw.Path == "" {
		raw.Path = uniqueName
	}
	if raw.Name == "" {
		raw.Name = strings.TrimSuffix(filepath.Base(raw.Path), filepath.Ext(raw.Path))
	}

	for _, tfm := range restore.Get("originalTargetFrameworks").Array() {
		raw.TargetFrameworks = append(raw.TargetFrameworks, tfm.String())
	}

	project.Get("frameworks").ForEach(func(key, framework gjson.Result) bool {
		alias := framework.Get("targetAlias").String()
		if alias == "" {
			alias = key.String()
		}
		if len(restore.Get("originalTargetFrameworks").Array()) == 0 {
			raw.TargetFrameworks = append(raw.TargetFrameworks, alias)
		}

		framework.Get("dependencies").ForEach(func(name, dep gjson.Result) bool {
			kind := entities.RawItemKind(dep.Get("target").String())
			if kind == packageTarget {
				kind = entities.RawItemPackageReference
			}
			raw.Items = append(raw.Items, entities.RawItem{
				Kind:            kind,
				Name:            name.String(),
				VersionRange:    dep.Get("version").String(),
				TargetFramework: alias,
				Imported:        dep.Get("autoReferenced").Bool(),
			})
			return true
		})
		return true
	})

	restore.Get("frameworks").ForEach(func(key, framework gjson.Result) bool {
		alias := framework.Get("targetAlias").String()
		if alias == "" {
			alias = key.String()
		}
		framework.Get("projectReferences").ForEach(func(path, _ gjson.Result) bool {
			raw.Items = append(raw.Items, entities.RawItem{
				Kind:            entities.RawItemProjectReference,
				Name:            path.String(),
				TargetFramework: alias,
			})
			return true
		})
		return true
	})

	return raw
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
