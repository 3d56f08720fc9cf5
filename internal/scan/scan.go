// Package scan discovers the source files the watcher tracks.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultExtensions are tracked when none are configured.
var DefaultExtensions = []string{".tsx", ".jsx"}

// DefaultExclude skips dependency and VCS directories.
var DefaultExclude = []string{"**/node_modules", "**/.git"}

// Options configures discovery.
type Options struct {
	Root             string
	Recursive        bool
	Extensions       []string // ".tsx", ".jsx"
	Exclude          []string // doublestar patterns relative to Root
	RespectGitignore bool
}

// Stats tracks discovery statistics.
type Stats struct {
	FilesDiscovered int // files with a tracked extension
	FilesScanned    int // files kept after filtering
	FilesSkipped    int // files dropped by exclude patterns or .gitignore
}

// Filter decides which paths under a root are tracked.
type Filter struct {
	root      string
	recursive bool
	exts      map[string]bool
	exclude   []string
	gitignore *ignore.GitIgnore
}

// NewFilter validates opts and resolves the root to an absolute path.
func NewFilter(opts Options) (*Filter, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	f := &Filter{
		root:      abs,
		recursive: opts.Recursive,
		exts:      make(map[string]bool, len(exts)),
	}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		f.exts[ext] = true
	}

	for _, pattern := range opts.Exclude {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
		f.exclude = append(f.exclude, pattern)
	}

	if opts.RespectGitignore {
		// A missing .gitignore is fine.
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(abs, ".gitignore")); err == nil {
			f.gitignore = gi
		}
	}
	return f, nil
}

// Root returns the absolute root directory.
func (f *Filter) Root() string {
	return f.root
}

// Recursive reports whether subdirectories are tracked.
func (f *Filter) Recursive() bool {
	return f.recursive
}

// HasTrackedExtension reports whether path ends in a tracked extension.
func (f *Filter) HasTrackedExtension(path string) bool {
	return f.exts[strings.ToLower(filepath.Ext(path))]
}

// Tracked reports whether a file path belongs to the watched set: it lives
// under the root (directly, unless recursive), has a tracked extension and is
// not excluded.
func (f *Filter) Tracked(path string) bool {
	if !f.HasTrackedExtension(path) {
		return false
	}
	rel, ok := f.rel(path)
	if !ok {
		return false
	}
	if !f.recursive && strings.Contains(rel, "/") {
		return false
	}
	return !f.excluded(rel, false)
}

// SkipDir reports whether a directory should not be descended into.
func (f *Filter) SkipDir(path string) bool {
	rel, ok := f.rel(path)
	if !ok {
		return true
	}
	if rel == "." {
		return false
	}
	return !f.recursive || f.excluded(rel, true)
}

func (f *Filter) rel(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(f.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// excluded checks rel and each of its parent directories.
func (f *Filter) excluded(rel string, isDir bool) bool {
	if f.matches(rel, isDir) {
		return true
	}
	for dir := pathDir(rel); dir != "."; dir = pathDir(dir) {
		if f.matches(dir, true) {
			return true
		}
	}
	return false
}

func (f *Filter) matches(rel string, isDir bool) bool {
	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	if f.gitignore != nil {
		if isDir && f.gitignore.MatchesPath(rel+"/") {
			return true
		}
		if f.gitignore.MatchesPath(rel) {
			return true
		}
	}
	return false
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return "."
	}
	return rel[:i]
}

// Discover walks the root and returns every tracked file as a sorted,
// absolute path.
func Discover(f *Filter) ([]string, Stats, error) {
	return DiscoverUnder(f, f.root)
}

// DiscoverUnder is Discover restricted to the subtree at dir.
func DiscoverUnder(f *Filter, dir string) ([]string, Stats, error) {
	var files []string
	var stats Stats

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			// Unreadable subtrees contribute nothing.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if f.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !f.HasTrackedExtension(path) {
			return nil
		}

		stats.FilesDiscovered++
		if !f.Tracked(path) {
			stats.FilesSkipped++
			return nil
		}
		stats.FilesScanned++
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("scan %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, stats, nil
}

// Dirs returns the directories that must be watched: the root and, when
// recursive, every non-excluded subdirectory.
func Dirs(f *Filter) ([]string, error) {
	return DirsUnder(f, f.root)
}

// DirsUnder returns dir and its watchable subdirectories.
func DirsUnder(f *Filter, dir string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if f.SkipDir(path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
