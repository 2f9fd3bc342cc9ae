package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIdenticalReturnsNil(t *testing.T) {
	content := []byte("<?php\n\necho 'hello';\n")
	d := Generate("app.php", content, content)
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())
}

func TestGenerateSingleLineChange(t *testing.T) {
	original := []byte("<?php\n$a = 1;\n$b = 2;\n$c = 3;\n")
	formatted := []byte("<?php\n$a = 1;\n$b = 20;\n$c = 3;\n")

	d := Generate("app.php", original, formatted)
	require.True(t, d.HasChanges())
	require.Len(t, d.Hunks, 1)

	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)

	h := d.Hunks[0]
	assert.Equal(t, 1, h.OrigStart)
	assert.Equal(t, 4, h.OrigCount)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 4, h.NewCount)
}

func TestGenerateAdditionOnly(t *testing.T) {
	original := []byte("a\nb\n")
	formatted := []byte("a\nb\nc\n")

	d := Generate("f.php", original, formatted)
	require.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 0, d.Deletions)
}

func TestGenerateRemovalOnly(t *testing.T) {
	original := []byte("a\nb\nc\n")
	formatted := []byte("a\nc\n")

	d := Generate("f.php", original, formatted)
	require.True(t, d.HasChanges())
	assert.Equal(t, 0, d.Additions)
	assert.Equal(t, 1, d.Deletions)
}

func TestGenerateDistantChangesSplitIntoHunks(t *testing.T) {
	var orig, next []string
	for i := 0; i < 30; i++ {
		orig = append(orig, "line")
		next = append(next, "line")
	}
	orig[2] = "old-top"
	next[2] = "new-top"
	orig[27] = "old-bottom"
	next[27] = "new-bottom"

	d := Generate("f.php",
		[]byte(strings.Join(orig, "\n")+"\n"),
		[]byte(strings.Join(next, "\n")+"\n"))
	require.True(t, d.HasChanges())
	assert.Len(t, d.Hunks, 2)
}

func TestGenerateNearbyChangesMergeIntoOneHunk(t *testing.T) {
	var orig, next []string
	for i := 0; i < 12; i++ {
		orig = append(orig, "line")
		next = append(next, "line")
	}
	orig[3] = "old-a"
	next[3] = "new-a"
	orig[7] = "old-b"
	next[7] = "new-b"

	d := Generate("f.php",
		[]byte(strings.Join(orig, "\n")+"\n"),
		[]byte(strings.Join(next, "\n")+"\n"))
	require.True(t, d.HasChanges())
	assert.Len(t, d.Hunks, 1)
}

func TestStringUnifiedFormat(t *testing.T) {
	original := []byte("one\ntwo\nthree\n")
	formatted := []byte("one\nTWO\nthree\n")

	d := Generate("/srv/app/index.php", original, formatted)
	out := d.String()

	assert.True(t, strings.HasPrefix(out, "--- a/srv/app/index.php\n+++ b/srv/app/index.php\n"))
	assert.Contains(t, out, "@@ -1,3 +1,3 @@")
	assert.Contains(t, out, "-two\n")
	assert.Contains(t, out, "+TWO\n")
	assert.Contains(t, out, " one\n")
}

func TestStringEmptyDiff(t *testing.T) {
	var d *Diff
	assert.Empty(t, d.String())
}

func TestGenerateEmptyToContent(t *testing.T) {
	d := Generate("f.php", nil, []byte("a\nb\n"))
	require.True(t, d.HasChanges())
	assert.Equal(t, 2, d.Additions)
	assert.Equal(t, 0, d.Deletions)

	h := d.Hunks[0]
	assert.Equal(t, 0, h.OrigCount)
	assert.Equal(t, 2, h.NewCount)
}

func TestHunkContextWindow(t *testing.T) {
	var orig, next []string
	for i := 0; i < 20; i++ {
		orig = append(orig, "ctx")
		next = append(next, "ctx")
	}
	orig[10] = "before"
	next[10] = "after"

	d := Generate("f.php",
		[]byte(strings.Join(orig, "\n")+"\n"),
		[]byte(strings.Join(next, "\n")+"\n"))
	require.Len(t, d.Hunks, 1)

	h := d.Hunks[0]
	// 3 context lines either side of a one-line replacement.
	assert.Equal(t, 8, h.OrigStart)
	assert.Equal(t, 7, h.OrigCount)
	assert.Equal(t, 7, h.NewCount)
	assert.Len(t, h.Lines, 8)
}
