//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/outdated/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RawProjectBuilder creates analyzer output for graph builder and command tests.
type RawProjectBuilder struct {
	*testkit.BaseBuilder
	name       string
	path       string
	frameworks []string
	items      []entities.RawItem
}

// NewRawProjectBuilder creates a single-framework project with no items.
func NewRawProjectBuilder() *RawProjectBuilder {
	return &RawProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "App",
		path:        "/src/App/App.csproj",
		frameworks:  []string{"net8.0"},
	}
}

func (b *RawProjectBuilder) WithName(name string) *RawProjectBuilder {
	b.name = name
	return b
}

func (b *RawProjectBuilder) WithPath(path string) *RawProjectBuilder {
	b.path = path
	return b
}

// WithFrameworks replaces the declared target framework monikers.
func (b *RawProjectBuilder) WithFrameworks(monikers ...string) *RawProjectBuilder {
	b.frameworks = monikers
	return b
}

// WithPackage adds a direct PackageReference applying to every framework.
func (b *RawProjectBuilder) WithPackage(name, versionRange string) *RawProjectBuilder {
	return b.WithItem(entities.RawItem{
		Kind:         entities.RawItemPackageReference,
		Name:         name,
		VersionRange: versionRange,
	})
}

// WithScopedPackage adds a PackageReference conditioned on one framework.
func (b *RawProjectBuilder) WithScopedPackage(name, versionRange, moniker string) *RawProjectBuilder {
	return b.WithItem(entities.RawItem{
		Kind:            entities.RawItemPackageReference,
		Name:            name,
		VersionRange:    versionRange,
		TargetFramework: moniker,
	})
}

// WithImportedPackage adds a PackageReference inherited from an imported file.
func (b *RawProjectBuilder) WithImportedPackage(name, versionRange string) *RawProjectBuilder {
	return b.WithItem(entities.RawItem{
		Kind:         entities.RawItemPackageReference,
		Name:         name,
		VersionRange: versionRange,
		Imported:     true,
	})
}

// WithItem adds an arbitrary raw item.
func (b *RawProjectBuilder) WithItem(item entities.RawItem) *RawProjectBuilder {
	b.items = append(b.items, item)
	return b
}

// Build creates the raw project (satisfies testkit.Builder interface).
func (b *RawProjectBuilder) Build() interface{} {
	return b.BuildRawProject()
}

// BuildRawProject creates the raw project with a concrete return type.
func (b *RawProjectBuilder) BuildRawProject() entities.RawProject {
	return entities.RawProject{
		Name:             b.name,
		Path:             b.path,
		TargetFrameworks: append([]string(nil), b.frameworks...),
		Items:            append([]entities.RawItem(nil), b.items...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RawProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "App"
	b.path = "/src/App/App.csproj"
	b.frameworks = []string{"net8.0"}
	b.items = nil
	return b
}

// Clone creates a deep copy of the RawProjectBuilder.
func (b *RawProjectBuilder) Clone() testkit.Builder {
	return &RawProjectBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		path:        b.path,
		frameworks:  append([]string(nil), b.frameworks...),
		items:       append([]entities.RawItem(nil), b.items...),
	}
}
