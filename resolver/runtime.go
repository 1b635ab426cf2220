package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blang/semver"
)

var commonUnixRuntimePaths = []string{
	"/usr/share/dotnet/shared",
	"/opt/dotnet/shared",
	"~/share/dotnet/shared",
}

// FindRuntimeBaseDirectory returns the first common shared-framework root
// that exists, or "".
func FindRuntimeBaseDirectory() string {
	for _, p := range commonUnixRuntimePaths {
		if strings.HasPrefix(p, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			p = filepath.Join(home, p[2:])
		}
		if isDir(p) {
			return p
		}
	}
	return ""
}

// SelectRuntimeDirectory picks the installed version directory under
// base/runtimeName for the requested version: the smallest installed
// version at or above it with the same major and minor version, else the
// smallest installed version at or above it, else base/runtimeName/version.
// Pre-release installs and directories that are not versions are ignored.
func SelectRuntimeDirectory(base, runtimeName, version string) string {
	runtimePath := filepath.Join(base, runtimeName)
	fallback := filepath.Join(runtimePath, version)

	want, err := semver.ParseTolerant(version)
	if err != nil {
		return fallback
	}

	var sameMinor, newer *installedVersion
	for _, iv := range installedVersions(runtimePath) {
		if iv.version.LT(want) {
			continue
		}
		if newer == nil || iv.version.LT(newer.version) {
			newer = &iv
		}
		if iv.version.Major == want.Major && iv.version.Minor == want.Minor &&
			(sameMinor == nil || iv.version.LT(sameMinor.version)) {
			sameMinor = &iv
		}
	}

	switch {
	case sameMinor != nil:
		return sameMinor.dir
	case newer != nil:
		return newer.dir
	default:
		return fallback
	}
}

type installedVersion struct {
	version semver.Version
	dir     string
}

func installedVersions(runtimePath string) []installedVersion {
	entries, err := os.ReadDir(runtimePath)
	if err != nil {
		return nil
	}
	var out []installedVersion
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.ParseTolerant(e.Name())
		if err != nil || len(v.Pre) > 0 {
			continue
		}
		out = append(out, installedVersion{version: v, dir: filepath.Join(runtimePath, e.Name())})
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
