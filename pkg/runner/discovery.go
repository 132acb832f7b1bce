package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Web Forms files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	sel, err := newSelector(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string

	add := func(file string) {
		if _, ok := seen[file]; !ok {
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
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

		if !info.IsDir() {
			// Files named explicitly only need the right extension.
			if sel.hasExtension(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := sel.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// selector decides which files and directories a walk visits.
type selector struct {
	workDir        string
	extensions     []string
	include        *pathMatcher
	exclude        *pathMatcher
	followSymlinks bool
}

func newSelector(workDir string, opts Options) (*selector, error) {
	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}

	excludes := opts.ExcludeGlobs
	if !opts.NoDefaultExcludes {
		excludes = append(DefaultExcludeGlobs(), excludes...)
	}
	exclude, err := compilePatterns(excludes)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}

	return &selector{
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		include:        include,
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
	}, nil
}

// walk recursively collects matching files under root.
func (s *selector) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || s.exclude.match(s.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !s.followSymlinks || s.exclude.match(s.rel(path), true) {
					return nil
				}
				// Walk the target; WalkDir does not descend into symlinks itself.
				subFiles, err := s.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if s.matches(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// rel returns path relative to the working directory.
func (s *selector) rel(path string) string {
	relPath, err := filepath.Rel(s.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// matches checks a walked file against the extension and glob filters.
func (s *selector) matches(path string) bool {
	if !s.hasExtension(path) {
		return false
	}

	relPath := s.rel(path)
	if s.exclude.match(relPath, false) {
		return false
	}

	return s.include.empty() || s.include.match(relPath, false)
}

func (s *selector) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range s.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// pathMatcher matches slash-separated relative paths against globs.
// A pattern also matches the base name, so "*.designer.aspx" applies at any
// depth, and a leading "**/" also matches at the top level.
type pathMatcher struct {
	globs []glob.Glob
}

func compilePatterns(patterns []string) (*pathMatcher, error) {
	m := &pathMatcher{}

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		alternatives := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			alternatives = append(alternatives, rest)
		}

		for _, alt := range alternatives {
			compiled, err := glob.Compile(alt, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			m.globs = append(m.globs, compiled)
		}
	}

	return m, nil
}

func (m *pathMatcher) empty() bool {
	return len(m.globs) == 0
}

// match reports whether relPath matches any pattern. Directories also
// match patterns that name their contents, such as "bin/**".
func (m *pathMatcher) match(relPath string, isDir bool) bool {
	slashed := filepath.ToSlash(relPath)
	candidates := []string{slashed, path.Base(slashed)}
	if isDir {
		candidates = append(candidates, slashed+"/")
	}

	for _, g := range m.globs {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}
