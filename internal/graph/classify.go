package graph

import (
	"path"
	"strings"
)

// Per-category extension sets. Matching is case-insensitive and the sets are
// closed: an extension either maps to exactly one category or the file falls
// through to CategoryOther.
var (
	headerExts = map[string]bool{
		".h": true, ".hpp": true, ".hh": true, ".hxx": true, ".inl": true,
	}
	sourceExts = map[string]bool{
		".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".c++": true,
	}
	shaderExts = map[string]bool{
		".glsl": true, ".vert": true, ".frag": true, ".geom": true,
		".comp": true, ".tesc": true, ".tese": true,
	}
	dataExts = map[string]bool{
		".json": true,
	}
	buildExts = map[string]bool{
		".cmake": true,
	}

	// otherExts is the accepted superset for files that match no category.
	// Anything outside it is dropped from the corpus entirely.
	otherExts = map[string]bool{
		".txt": true, ".md": true, ".xml": true, ".ini": true,
		".cfg": true, ".yml": true, ".yaml": true,
	}

	// skipDirs are conventional build-output, version-control, and
	// dependency-cache directory names. A path containing any of these as a
	// segment is dropped before classification.
	skipDirs = map[string]bool{
		"build": true, "out": true, "bin": true, "obj": true,
		"dist": true, "node_modules": true, "vendor": true,
		"CMakeFiles": true, "__pycache__": true,
		"Debug": true, "Release": true,
	}
)

// SkipDirSegment reports whether a single path segment names a directory the
// analysis never descends into: hidden entries and the skipDirs set, plus
// IDE-generated cmake-build-* trees.
func SkipDirSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if strings.HasPrefix(seg, ".") {
		return true
	}
	if skipDirs[seg] {
		return true
	}
	return strings.HasPrefix(seg, "cmake-build-")
}

// NormalizePath converts p to the slash-separated relative form used as a
// SourceUnit ID.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}

// DropPath reports whether a normalized path is excluded from the corpus
// because one of its segments is hidden or a known build/VCS/cache directory.
// The final segment (the file name itself) is checked only for hiddenness.
func DropPath(p string) bool {
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		if i == len(segs)-1 {
			if strings.HasPrefix(seg, ".") {
				return true
			}
			continue
		}
		if SkipDirSegment(seg) {
			return true
		}
	}
	return false
}

// Classify maps a normalized path to its category. The second return is
// false when the file should be dropped: either DropPath rejects it, or it
// classifies as CategoryOther with an extension outside the accepted
// superset.
func Classify(p string) (Category, bool) {
	if DropPath(p) {
		return CategoryOther, false
	}

	base := path.Base(p)
	if base == "CMakeLists.txt" {
		return CategoryBuild, true
	}

	ext := strings.ToLower(path.Ext(base))
	switch {
	case headerExts[ext]:
		return CategoryHeader, true
	case sourceExts[ext]:
		return CategorySource, true
	case shaderExts[ext]:
		return CategoryShader, true
	case dataExts[ext]:
		return CategoryData, true
	case buildExts[ext]:
		return CategoryBuild, true
	case otherExts[ext]:
		return CategoryOther, true
	default:
		return CategoryOther, false
	}
}

// GroupOf returns the display group for a unit id: the name of its
// containing directory, or "root" for top-level files.
func GroupOf(id string) string {
	dir := path.Dir(id)
	if dir == "." || dir == "/" {
		return "root"
	}
	return path.Base(dir)
}
