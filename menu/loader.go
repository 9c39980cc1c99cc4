package menu

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/mwantia/menufs/data"
	errs "github.com/mwantia/menufs/data/errors"
	"github.com/mwantia/menufs/log"
	"github.com/spf13/afero"
)

// MergedDir is the directory below each XDG config dir that DefaultMergeDirs expands to.
const MergedDir = "menus/applications-merged"

type LoaderOptions struct {
	Fs         afero.Fs
	Logger     *log.Logger
	ConfigHome string
	ConfigDirs []string
	Pattern    string
}

type LoaderOption func(*LoaderOptions) error

func newDefaultLoaderOptions() *LoaderOptions {
	return &LoaderOptions{
		Fs:      afero.NewOsFs(),
		Logger:  log.Discard(),
		Pattern: "*.menu",
	}
}

func WithFs(fs afero.Fs) LoaderOption {
	return func(opts *LoaderOptions) error {
		opts.Fs = fs
		return nil
	}
}

func WithLogger(logger *log.Logger) LoaderOption {
	return func(opts *LoaderOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithConfigDirs sets $XDG_CONFIG_HOME and $XDG_CONFIG_DIRS (highest precedence first).
func WithConfigDirs(home string, dirs []string) LoaderOption {
	return func(opts *LoaderOptions) error {
		opts.ConfigHome = home
		opts.ConfigDirs = dirs
		return nil
	}
}

// WithPattern overrides the glob selecting files inside a MergeDir.
func WithPattern(pattern string) LoaderOption {
	return func(opts *LoaderOptions) error {
		opts.Pattern = pattern
		return nil
	}
}

// Loader reads a .menu file and resolves every merge directive into a single tree.
type Loader struct {
	fs         afero.Fs
	log        *log.Logger
	configHome string
	configDirs []string
	pattern    glob.Glob
}

func NewLoader(opts ...LoaderOption) (*Loader, error) {
	options := newDefaultLoaderOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	pattern, err := glob.Compile(options.Pattern)
	if err != nil {
		return nil, err
	}

	return &Loader{
		fs:         options.Fs,
		log:        options.Logger,
		configHome: options.ConfigHome,
		configDirs: options.ConfigDirs,
		pattern:    pattern,
	}, nil
}

// Load parses path and every file it merges in, then folds same-named
// sibling menus. Cancellation is observed before each file read and before
// each MergeDir entry.
func (l *Loader) Load(ctx context.Context, path string) (*Tree, error) {
	t := newTree()

	root, err := l.loadFile(ctx, t, path)
	if err != nil {
		return nil, err
	}

	t.root = root
	t.mergeMenus(root)

	l.log.Debug("Loaded menu '%s' with %d nodes", path, t.Len())
	return t, nil
}

// MergeDirs returns the directories DefaultMergeDirs expands to, lowest
// precedence first.
func (l *Loader) MergeDirs() []string {
	dirs := make([]string, 0, len(l.configDirs)+1)
	for i := len(l.configDirs) - 1; i >= 0; i-- {
		dirs = append(dirs, filepath.Join(l.configDirs[i], MergedDir))
	}
	if l.configHome != "" {
		dirs = append(dirs, filepath.Join(l.configHome, MergedDir))
	}

	return dirs
}

func (l *Loader) loadFile(ctx context.Context, t *Tree, path string) (NodeID, error) {
	if err := data.CheckCancelled(ctx); err != nil {
		return NoNode, err
	}

	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return NoNode, err
	}

	root, err := t.parse(path, content)
	if err != nil {
		return NoNode, err
	}

	if err := l.resolve(ctx, t, root, filepath.Dir(path)); err != nil {
		return NoNode, err
	}

	return root, nil
}

// resolve replaces every merge directive below menu with the spliced
// content. Relative paths resolve against dir, the directory of the file
// that contains the directive.
func (l *Loader) resolve(ctx context.Context, t *Tree, menu NodeID, dir string) error {
	children := make([]NodeID, 0, len(t.nodes[menu].Children))

	for _, child := range t.Children(menu) {
		var spliced []NodeID
		var err error

		switch t.nodes[child].Tag {
		case TagMenu:
			if err := l.resolve(ctx, t, child, dir); err != nil {
				return err
			}
			children = append(children, child)
			continue

		case TagMergeFile:
			path := resolvePath(dir, t.nodes[child].Text)
			if spliced, err = l.mergeFile(ctx, t, path); err != nil {
				return errs.Merge(err, path)
			}

		case TagMergeDir:
			path := resolvePath(dir, t.nodes[child].Text)
			if spliced, err = l.mergeDir(ctx, t, path); err != nil {
				return errs.Merge(err, path)
			}

		case TagDefaultMergeDirs:
			for _, path := range l.MergeDirs() {
				nodes, err := l.mergeDir(ctx, t, path)
				if err != nil {
					return errs.Merge(err, path)
				}
				spliced = append(spliced, nodes...)
			}

		default:
			children = append(children, child)
			continue
		}

		t.remove(child)
		children = append(children, spliced...)
	}

	t.nodes[menu].Children = children
	return nil
}

// mergeFile loads path and returns the children of its root Menu, minus its Name.
// There is no guard against a file merging itself; only ctx bounds that recursion.
func (l *Loader) mergeFile(ctx context.Context, t *Tree, path string) ([]NodeID, error) {
	root, err := l.loadFile(ctx, t, path)
	if err != nil {
		return nil, err
	}

	var spliced []NodeID
	for _, child := range t.Children(root) {
		if t.nodes[child].Tag == TagName {
			t.remove(child)
			continue
		}
		spliced = append(spliced, child)
	}
	t.remove(root)

	l.log.Debug("Merged %d nodes from '%s'", len(spliced), path)
	return spliced, nil
}

// mergeDir merges every file matching the pattern in dir. A missing
// directory merges nothing.
func (l *Loader) mergeDir(ctx context.Context, t *Tree, dir string) ([]NodeID, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Debug("Skipping missing merge directory '%s'", dir)
			return nil, nil
		}
		return nil, err
	}

	var spliced []NodeID
	for _, entry := range entries {
		if err := data.CheckCancelled(ctx); err != nil {
			return nil, err
		}
		if entry.IsDir() || !l.pattern.Match(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		nodes, err := l.mergeFile(ctx, t, path)
		if err != nil {
			return nil, errs.Merge(err, path)
		}
		spliced = append(spliced, nodes...)
	}

	return spliced, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
