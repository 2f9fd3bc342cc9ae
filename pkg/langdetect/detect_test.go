package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPHPPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"index.php", true},
		{"template.phtml", true},
		{"INDEX.PHP", true},
		{"src/Controller/HomeController.php", true},
		{"script", false},
		{"main.go", false},
		{"notes.md", false},
		{"archive.php.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPHPPath(tt.path))
		})
	}
}

func TestIsPHPExtensionIsAuthoritative(t *testing.T) {
	// A .php file is PHP no matter its content.
	assert.True(t, IsPHP("weird.php", []byte("#!/bin/sh\necho hi\n")))

	// A .go file is never PHP even with a PHP opening tag.
	assert.False(t, IsPHP("gen.go", []byte("<?php echo 1;\n")))
}

func TestIsPHPShebang(t *testing.T) {
	assert.True(t, IsPHP("console", []byte("#!/usr/bin/env php\n<?php\necho 'cli';\n")))
	assert.True(t, IsPHP("console", []byte("#!/usr/bin/php\n<?php\n")))
	assert.False(t, IsPHP("deploy", []byte("#!/bin/bash\nset -e\n")))
}

func TestIsPHPOpeningTagFallback(t *testing.T) {
	assert.True(t, IsPHP("fragment", []byte("<?php\nreturn [];\n")))
	assert.False(t, IsPHP("fragment", []byte("just some text\n")))
}

func TestIsPHPTagOutsideHead(t *testing.T) {
	// The opening tag must appear within the first 512 bytes.
	content := make([]byte, 600)
	for i := range content {
		content[i] = 'x'
	}
	content = append(content, []byte("<?php")...)
	assert.False(t, IsPHP("blob", content))
}
