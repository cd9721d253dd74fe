package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/rpctypegen/errors"
)

// ArtifactBase is the file name of the generated artifact, without extension.
const ArtifactBase = "rpc_response_types"

// LatestVersionDir returns the name of the newest entry of quizface's output
// directory. Entries are ranked by semantic version when every candidate
// parses as one (a leading "v" is accepted); otherwise the lexicographically
// last name wins.
func LatestVersionDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", errors.WithHint(errors.NewFilesystemError(err, root),
			"pass the output path explicitly or set quizface_output_dir")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", errors.Mark(errors.Newf("no quizface output in %s", root), errors.ErrFilesystem)
	}

	sort.Strings(names)

	versions := make(map[string]*semver.Version, len(names))
	for _, name := range names {
		v, err := semver.NewVersion(name)
		if err != nil {
			return names[len(names)-1], nil
		}
		versions[name] = v
	}

	sort.SliceStable(names, func(i, j int) bool {
		return versions[names[i]].LessThan(versions[names[j]])
	})
	return names[len(names)-1], nil
}

// DefaultOutputPath builds <outputRoot>/<latest quizface dir>_<version>/rpc_response_types.<ext>.
func DefaultOutputPath(outputRoot, quizfaceDir, version, ext string) (string, error) {
	latest, err := LatestVersionDir(quizfaceDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(outputRoot, fmt.Sprintf("%s_%s", latest, version), ArtifactBase+"."+ext), nil
}
