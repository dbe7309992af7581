package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatedFilesRoundTrip(t *testing.T) {
	stdout := `
 Generating controller...

 created: src/Foo.php

 Next: open your new controller and customize it!
`
	assert.Equal(t, []string{"src/Foo.php"}, CreatedFiles(stdout, DefaultMarker))
}

func TestCreatedFilesPreservesOrderAndDuplicates(t *testing.T) {
	stdout := "created: src/A.php\nnoise\ncreated: src/B.php\ncreated: src/A.php\n"

	assert.Equal(t, []string{"src/A.php", "src/B.php", "src/A.php"},
		CreatedFiles(stdout, DefaultMarker))
}

func TestCreatedFilesTrimsWhitespace(t *testing.T) {
	stdout := "  created:    src/Controller/FooController.php   \n"

	assert.Equal(t, []string{"src/Controller/FooController.php"},
		CreatedFiles(stdout, DefaultMarker))
}

func TestCreatedFilesNoMatches(t *testing.T) {
	assert.Empty(t, CreatedFiles("nothing here\nat all\n", DefaultMarker))
}

func TestCreatedFilesEmptyMarkerFallsBackToDefault(t *testing.T) {
	assert.Equal(t, []string{"src/X.php"}, CreatedFiles("created: src/X.php", ""))
}

func TestCreatedFilesIgnoresMarkerWithEmptyPath(t *testing.T) {
	assert.Empty(t, CreatedFiles("created:   \n", DefaultMarker))
}
