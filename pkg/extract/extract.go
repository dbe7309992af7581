// Package extract scans captured generator output for announcements of
// created files. The "created:" marker is a text contract owned by the
// generator, matched by containment rather than a strict line format.
package extract

import "strings"

// DefaultMarker is the marker used when the settings do not override it.
const DefaultMarker = "created:"

// CreatedFiles returns the relative paths announced in stdout, in order of
// appearance. Duplicates are kept, mirroring how the generator emits them.
func CreatedFiles(stdout, marker string) []string {
	if marker == "" {
		marker = DefaultMarker
	}

	var paths []string
	for _, line := range strings.Split(stdout, "\n") {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		path := strings.TrimSpace(line[idx+len(marker):])
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
