package rust

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/teranos/rpctypegen/errors"
)

// CargoManifestName is the manifest written next to the artifact.
const CargoManifestName = "Cargo.toml"

// CargoManifest is the subset of Cargo.toml the scaffold manages
type CargoManifest struct {
	Package      CargoPackage           `toml:"package"`
	Lib          CargoLib               `toml:"lib"`
	Dependencies map[string]interface{} `toml:"dependencies"`
}

// CargoPackage is the [package] table
type CargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// CargoLib is the [lib] table
type CargoLib struct {
	Path string `toml:"path"`
}

// requiredDependencies are the crates generated code refers to.
var requiredDependencies = map[string]interface{}{
	"serde": map[string]interface{}{
		"version":  "1",
		"features": []string{"derive"},
	},
	"rust_decimal": map[string]interface{}{
		"version":  "1",
		"features": []string{"serde"},
	},
}

// WriteCargoManifest writes a Cargo.toml that builds the artifact as a
// library crate. An existing manifest keeps its package name, version and
// extra dependencies; serde and rust_decimal are always (re)declared.
// Returns the manifest path.
func WriteCargoManifest(artifactPath, packageName, version string) (string, error) {
	dir := filepath.Dir(artifactPath)
	path := filepath.Join(dir, CargoManifestName)

	manifest := CargoManifest{
		Package: CargoPackage{Name: packageName, Version: version, Edition: "2021"},
	}
	if _, err := os.Stat(path); err == nil {
		var existing CargoManifest
		if _, err := toml.DecodeFile(path, &existing); err != nil {
			return "", errors.NewFilesystemError(errors.Wrap(err, "failed to parse Cargo.toml"), path)
		}
		manifest.Dependencies = existing.Dependencies
		if existing.Package.Name != "" {
			manifest.Package.Name = existing.Package.Name
		}
		if existing.Package.Version != "" {
			manifest.Package.Version = existing.Package.Version
		}
		if existing.Package.Edition != "" {
			manifest.Package.Edition = existing.Package.Edition
		}
	}

	if manifest.Dependencies == nil {
		manifest.Dependencies = make(map[string]interface{}, len(requiredDependencies))
	}
	for name, spec := range requiredDependencies {
		manifest.Dependencies[name] = spec
	}
	manifest.Lib.Path = filepath.Base(artifactPath)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(manifest); err != nil {
		return "", errors.Wrap(err, "failed to encode Cargo.toml")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", errors.NewFilesystemError(err, path)
	}
	return path, nil
}
