package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/langdetect"
)

// Discover resolves opts.Paths to a sorted, deduplicated list of PHP
// files. Explicitly named files bypass the extension filter so that
// extensionless scripts can still be formatted on request; directory
// walks apply extensions and exclude globs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, workDir, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				add(f)
			}
			continue
		}
		if !excluded(relTo(workDir, absPath), opts.ExcludeGlobs) {
			add(absPath)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(workDir)
}

func relTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func walkDirectory(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string
	extensions := opts.effectiveExtensions()

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := relTo(workDir, path)

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if excluded(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target rather than the link so WalkDir's
				// lstat on the root does not loop.
				sub, err := walkDirectory(ctx, realPath, workDir, opts)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if !hasExtension(path, extensions) {
			// Extensionless scripts still qualify via shebang.
			if filepath.Ext(path) != "" || !sniffPHP(path) {
				return nil
			}
		}
		if excluded(relPath, opts.ExcludeGlobs) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

// sniffPHP reads the head of an extensionless file and classifies it by
// shebang or opening tag.
func sniffPHP(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	return langdetect.IsPHP(path, head[:n])
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func excluded(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-normalized path against a glob pattern,
// with ** handled for recursive matches.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}
	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

func matchDoubleStar(path, pattern string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" {
		if !strings.HasPrefix(path, prefix+"/") && path != prefix {
			return false
		}
	}
	if suffix == "" {
		return true
	}
	if strings.HasSuffix(path, suffix) || strings.Contains(path, suffix) {
		return true
	}
	for _, component := range strings.Split(path, "/") {
		if matched, err := filepath.Match(suffix, component); err == nil && matched {
			return true
		}
	}
	return false
}
