package entities

// RawItemKind is the item type reported by a project analyzer.
type RawItemKind string

const (
	// RawItemPackageReference is a direct package reference.
	RawItemPackageReference RawItemKind = "PackageReference"
	// RawItemProjectReference is a reference to another project in the build.
	RawItemProjectReference RawItemKind = "ProjectReference"
	// RawItemFrameworkReference is a shared-framework reference.
	RawItemFrameworkReference RawItemKind = "FrameworkReference"
)

// RawItem is one dependency declaration as the build system reported it.
type RawItem struct {
	Kind            RawItemKind
	Name            string
	VersionRange    string
	TargetFramework string // empty when the item applies to every target framework
	Imported        bool   // inherited from an imported file or defined implicitly by the SDK
}

// RawProject is the analyzer output for one project file.
type RawProject struct {
	Name             string
	Path             string
	TargetFrameworks []string
	Items            []RawItem
}

// Dependency is a direct package reference scoped to one target framework.
type Dependency struct {
	Name         string
	VersionRange string
}

// TargetFramework groups the dependencies declared for one framework moniker.
type TargetFramework struct {
	Moniker      string
	Dependencies []Dependency
}

// Project is a built project with at least one target framework.
type Project struct {
	Name             string
	Path             string
	TargetFrameworks []TargetFramework
}

// ProjectFailure records a project that could not be analyzed or built.
type ProjectFailure struct {
	Name string
	Path string
	Err  error
}
