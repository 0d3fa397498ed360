package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ligature/log"
)

// ScriptExt is the file extension tried when resolving a script name on the
// search path.
const ScriptExt = ".wander"

// stdinSource names standard input as a source.
const stdinSource = "-"

type (
	contextKey    struct{}
	searchPathKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// WithSearchPath returns a new context.Context carrying the directories in
// which script names are resolved.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// logger returns the default logger tagged with the running command.
func logger(command string) log.Logger {
	return log.With(slog.String("command", command))
}

// openSource opens path for reading, or standard input for "-".
func openSource(path string) (io.ReadCloser, error) {
	if path == stdinSource || path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("path", path))
	}

	return f, nil
}

// resolveScript locates a script. A name that is "-", contains a path
// separator, or names an existing file is used as given. Otherwise each
// directory in the search path is tried, first with the bare name and then
// with [ScriptExt] appended.
func resolveScript(ctx context.Context, name string) (string, error) {
	if name == stdinSource || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}

	if isFile(name) {
		return name, nil
	}

	dirs := searchPathFrom(ctx)

	for _, dir := range dirs {
		for _, candidate := range []string{name, name + ScriptExt} {
			path := filepath.Join(dir, candidate)
			if isFile(path) {
				return path, nil
			}
		}
	}

	return "", ErrScriptNotFound.With(
		slog.String("name", name),
		slog.Any("path", dirs),
	)
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// sourceFiles reads a list of sources in order as one stream. A newline is
// inserted between sources so that a file without a trailing newline
// cannot join its last line to the next file's first.
type sourceFiles struct {
	read     []io.Reader
	closers  []io.Closer
	hasStdin bool
}

// Reader returns a reader over all sources, with standard input last.
func (s *sourceFiles) Reader() io.Reader {
	readers := make([]io.Reader, 0, 2*len(s.read)+1)

	for _, r := range s.read {
		readers = append(readers, r, strings.NewReader("\n"))
	}

	if s.hasStdin {
		readers = append(readers, os.Stdin)
	}

	return io.MultiReader(readers...)
}

// Close closes every opened file.
func (s *sourceFiles) Close() error {
	var first error

	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// fileKey uniquely identifies a file by its device and inode numbers, so
// that the same file named twice (through a symlink or a relative path) is
// read once.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSourceFiles opens each of sources, skipping duplicates. Every "-" is
// replaced by a single standard input reader placed last. An empty list
// reads standard input.
func openSourceFiles(sources []string) (*sourceFiles, error) {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	srcs := &sourceFiles{}
	seen := make(map[fileKey]struct{})

	// A file argument that is the same file as standard input is read once,
	// through standard input.
	var stdinKey fileKey

	stdinOK := false
	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, stdinOK = makeFileKey(info)
	}

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		f, key, err := openUnique(src, seen)
		if err != nil {
			_ = srcs.Close()

			return nil, err
		}

		if f == nil {
			continue
		}

		if stdinOK && key == stdinKey {
			_ = f.Close()
			srcs.hasStdin = true

			continue
		}

		srcs.read = append(srcs.read, f)
		srcs.closers = append(srcs.closers, f)
	}

	return srcs, nil
}

// openUnique opens path unless a file with the same identity is in seen.
// It returns a nil file for duplicates.
func openUnique(path string, seen map[fileKey]struct{}) (*os.File, fileKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileKey{}, ErrOpenSource.Wrap(err).With(slog.String("path", path))
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, fileKey{}, ErrOpenSource.Wrap(err).With(slog.String("path", path))
	}

	key, ok := makeFileKey(info)
	if !ok {
		return f, fileKey{}, nil
	}

	if _, dup := seen[key]; dup {
		_ = f.Close()

		return nil, key, nil
	}

	seen[key] = struct{}{}

	return f, key, nil
}

// makeFileKey returns the identity of the file described by info.
// It reports false if the platform does not expose device and inode.
func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
