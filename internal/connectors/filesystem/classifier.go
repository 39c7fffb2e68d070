// Package filesystem collects document records from a local directory tree.
package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/inah-tools/archivo/internal/core/domain"
)

const (
	currentDir = "."
	parentDir  = ".."
)

// Classify derives region and site labels for dir, a directory under root.
//
// With at least two path components below root the last two become region
// and site. A single component names the region and the site is "N/A".
// Anything else, including root itself, falls back to the directory's base
// name as site and "Desconocido" as region. Classify never fails.
func Classify(root, dir string) domain.Classification {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return classifyRaw(dir, fmt.Sprintf("cannot relate %q to root: %v", dir, err))
	}

	components := strings.Split(rel, string(filepath.Separator))
	if components[0] == parentDir {
		return classifyRaw(dir, fmt.Sprintf("%q is outside the root", dir))
	}

	n := len(components)
	switch {
	case n >= 2 && components[n-1] != "" && components[n-2] != "":
		return domain.Inferred(components[n-2], components[n-1])
	case n == 1 && components[0] != currentDir && components[0] != "":
		return domain.Inferred(components[0], domain.NoSiteLabel)
	}

	reason := "directory is the root"
	if rel != currentDir {
		reason = fmt.Sprintf("unexpected relative path %q", rel)
	}
	return domain.Fallback(domain.UnknownLabel, baseLabel(dir), reason)
}

// classifyRaw labels dir from its own trailing segments when it cannot be
// expressed relative to the root.
func classifyRaw(dir, reason string) domain.Classification {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return domain.Fallback(parts[len(parts)-2], parts[len(parts)-1], reason)
	}
	return domain.Fallback(domain.UnknownLabel, domain.UnknownLabel, reason)
}

// baseLabel returns the base name of dir, or the unknown sentinel when the
// base name carries no label (a filesystem or volume root).
func baseLabel(dir string) string {
	base := filepath.Base(dir)
	switch base {
	case "", currentDir, "/":
		return domain.UnknownLabel
	}
	if base == string(filepath.Separator) {
		return domain.UnknownLabel
	}
	if vol := filepath.VolumeName(dir); vol != "" && strings.TrimPrefix(base, vol) == "" {
		return domain.UnknownLabel
	}
	return base
}
