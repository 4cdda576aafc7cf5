package config

import (
	stderr "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/utils"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the variable that overrides the config location.
	EnvConfigPath = "CONFIG_PATH"

	// DefaultRelPath is the config location relative to the base directory.
	DefaultRelPath = "config/configuration.yaml"
)

// Document is an untyped YAML mapping.
type Document map[string]any

// NotFoundError reports a config path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "config file not found: " + e.Path
}

// Unwrap lets errors.Is(err, fs.ErrNotExist) match.
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// Resolver locates and parses the configuration file. Relative paths are
// always anchored to BaseDir, never to the process working directory.
type Resolver struct {
	BaseDir string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// NewResolver returns a Resolver anchored at baseDir.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir}
}

// DefaultBaseDir is the parent of the directory holding the running
// executable, so a binary at <root>/bin/app reads <root>/config/configuration.yaml.
func DefaultBaseDir() (string, error) {
	const op errors.Op = "config.DefaultBaseDir"
	dir, err := utils.AbsDirPathForExecutable()
	if err != nil {
		return "", errors.New(op).Err(err).Msgf("locating executable: %v", err)
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	return filepath.Dir(dir), nil
}

// Load resolves path against DefaultBaseDir and parses it.
func Load(path string) (Document, error) {
	base, err := DefaultBaseDir()
	if err != nil {
		return nil, err
	}
	return NewResolver(base).Load(path)
}

// Resolve picks the config path: path if non-empty, else $CONFIG_PATH if
// non-empty, else DefaultRelPath. Relative results are joined to BaseDir,
// which must itself be absolute.
func (r *Resolver) Resolve(path string) (string, error) {
	const op errors.Op = "config.Resolver.Resolve"
	if path == "" {
		if v, ok := r.lookupEnv(EnvConfigPath); ok && v != "" {
			path = v
		} else {
			path = DefaultRelPath
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	base := r.BaseDir
	if base == "" {
		var err error
		if base, err = DefaultBaseDir(); err != nil {
			return "", err
		}
	}
	if !filepath.IsAbs(base) {
		return "", errors.New(op).Msgf("base directory %q is not absolute", base)
	}
	return filepath.Join(base, path), nil
}

// Load reads and parses the resolved file. A document with no content yields
// an empty, non-nil Document. The file is read on every call.
func (r *Resolver) Load(path string) (Document, error) {
	doc := Document{}
	if err := r.LoadInto(path, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// LoadInto decodes the resolved file into out, which must be a pointer.
// An empty file leaves out untouched.
func (r *Resolver) LoadInto(path string, out any) error {
	const op errors.Op = "config.Resolver.LoadInto"
	resolved, err := r.Resolve(path)
	if err != nil {
		return err
	}

	f, err := open(resolved)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(out); err != nil && !stderr.Is(err, io.EOF) {
		return errors.New(op).Err(err).Msgf("parsing config file %s: %v", resolved, err)
	}
	return nil
}

func (r *Resolver) lookupEnv(key string) (string, bool) {
	if r.LookupEnv != nil {
		return r.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func open(path string) (*os.File, error) {
	const op errors.Op = "config.open"
	exists, err := utils.PathExists(path)
	if err != nil {
		return nil, errors.New(op).Err(err).Msgf("reading config file %s: %v", path, err)
	}
	if !exists {
		return nil, &NotFoundError{Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(op).Err(err).Msgf("reading config file %s: %v", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.New(op).Err(err).Msgf("reading config file %s: %v", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, errors.New(op).Msgf("reading config file %s: is a directory", path)
	}
	return f, nil
}
