// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultFileSuffix is appended to a key to form the name of its
// indirection environment variable.
const DefaultFileSuffix = "_FILE"

// FileOpenError occurs when an indirection variable is set but the
// file it points at cannot be opened.
type FileOpenError struct {
	Key   string
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e FileOpenError) Error() string {
	return fmt.Sprintf("failed to open file %q for key %q: %s", e.Path, e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e FileOpenError) Unwrap() error {
	return e.Cause
}

// FileReadError occurs when the file an indirection variable points at
// was opened but could not be fully read.
type FileReadError struct {
	Key   string
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %q for key %q: %s", e.Path, e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e FileReadError) Unwrap() error {
	return e.Cause
}

// fileSource reads the contents of the file whose path is held by the
// indirection environment variable, key + suffix.
//
// An unset indirection variable is an abstention. A set indirection
// variable whose file cannot be opened or read is a hard failure;
// resolution must not fall through to a lower priority source.
type fileSource struct {
	suffix    string
	lookupEnv func(string) (string, bool)
	fsys      fs.FS
}

func newFileSource(suffix string, lookupEnv func(string) (string, bool), fsys fs.FS) fileSource {
	if suffix == "" {
		suffix = DefaultFileSuffix
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if fsys == nil {
		fsys = osFS{}
	}
	return fileSource{
		suffix:    suffix,
		lookupEnv: lookupEnv,
		fsys:      fsys,
	}
}

func (src fileSource) lookup(_ context.Context, key string) (string, error) {
	path, ok := src.lookupEnv(key + src.suffix)
	if !ok {
		return "", ErrNotFound
	}

	f, err := src.fsys.Open(path)
	if err != nil {
		return "", FileOpenError{Key: key, Path: path, Cause: err}
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", FileReadError{Key: key, Path: path, Cause: err}
	}
	return string(b), nil
}

// osFS passes paths straight through to the operating system, unlike
// os.DirFS which rejects absolute paths.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}
