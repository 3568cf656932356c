// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
)

// DotenvLoadError occurs when a dotenv file exists but could not be
// opened or read. A dotenv file which simply does not exist is skipped
// silently and never produces this error.
type DotenvLoadError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e DotenvLoadError) Error() string {
	return fmt.Sprintf("failed to load dotenv file %q: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e DotenvLoadError) Unwrap() error {
	return e.Cause
}

// A meaningful dotenv line is an optional export keyword, a key, an
// equals sign and the rest of the line as the value. Whitespace around
// the key and after the equals sign is ignored.
var dotenvLine = regexp.MustCompile(`^\s*(?:export\s+)?\s*([^=]+?)\s*=\s*(.+)$`)

// dotenvFile is one parsed dotenv file.
type dotenvFile struct {
	path string
	vars map[string]string
}

// dotenvSource holds parsed dotenv files in registration order. Each
// file is parsed once, at registration, and never reloaded. Lookups
// scan the files in registration order and return the first match, so
// the file registered first has the highest precedence.
type dotenvSource struct {
	fsys  fs.FS
	files []dotenvFile
}

func newDotenvSource(fsys fs.FS) *dotenvSource {
	if fsys == nil {
		fsys = osFS{}
	}
	return &dotenvSource{
		fsys: fsys,
	}
}

// register parses the dotenv file at path and appends it to the lookup
// list. A missing file is skipped without error. Any other open or
// read failure is returned as a [DotenvLoadError].
func (src *dotenvSource) register(path string) error {
	f, err := src.fsys.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return DotenvLoadError{Path: path, Cause: err}
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return DotenvLoadError{Path: path, Cause: err}
	}

	src.files = append(src.files, dotenvFile{
		path: path,
		vars: parseDotenv(string(b)),
	})
	return nil
}

func (src *dotenvSource) lookup(_ context.Context, key string) (string, error) {
	for _, f := range src.files {
		if v, ok := f.vars[key]; ok {
			return v, nil
		}
	}
	return "", ErrNotFound
}

// parseDotenv parses the full contents of a dotenv file.
//
// Lines which do not match the dotenv grammar are skipped. A value
// wrapped in matching single or double quotes has exactly one layer of
// quotes stripped; an unquoted value is kept verbatim, trailing
// whitespace included. When a key appears more than once the last
// line wins.
func parseDotenv(contents string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(contents, "\n") {
		m := dotenvLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		key, value := m[1], m[2]
		if len(value) >= 2 {
			quoted := (strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`)) ||
				(strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`))
			if quoted {
				value = value[1 : len(value)-1]
			}
		}

		vars[key] = value
	}
	return vars
}
