// Package langdetect decides whether a file holds PHP source. Files
// with a PHP extension qualify by name; extensionless scripts are
// classified by shebang and content through go-enry.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Extensions recognized as PHP by name alone.
var phpExtensions = map[string]bool{
	".php":   true,
	".phtml": true,
}

// IsPHPPath reports whether the path carries a PHP extension.
func IsPHPPath(path string) bool {
	return phpExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPHP reports whether content at path is PHP. A recognized extension
// is authoritative; otherwise the shebang decides, and as a last
// resort an opening tag near the start of the file.
func IsPHP(path string, content []byte) bool {
	if ext := filepath.Ext(path); ext != "" {
		return phpExtensions[strings.ToLower(ext)]
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return strings.EqualFold(lang, "PHP")
	}
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<?php"))
}
