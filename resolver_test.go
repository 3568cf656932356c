// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolver_Resolve(t *testing.T) {
	testCases := []struct {
		name           string
		env            map[string]string
		fsys           fstest.MapFS
		dotenv         string
		key            string
		expected       Value
		expectNotFound bool
	}{
		{
			name:     "will return the env var value when only the env var is set",
			env:      map[string]string{"NUMBER": "1"},
			key:      "NUMBER",
			expected: Value{Raw: "1", Origin: OriginEnv},
		},
		{
			name: "will return the file contents when only the indirection var is set",
			env:  map[string]string{"NUMBER_FILE": "secrets/number"},
			fsys: fstest.MapFS{
				"secrets/number": &fstest.MapFile{Data: []byte("1")},
			},
			key:      "NUMBER",
			expected: Value{Raw: "1", Origin: OriginFile},
		},
		{
			name: "will prefer the indirection file over the env var",
			env: map[string]string{
				"NUMBER":      "from env",
				"NUMBER_FILE": "secrets/number",
			},
			fsys: fstest.MapFS{
				"secrets/number": &fstest.MapFile{Data: []byte("from file")},
			},
			key:      "NUMBER",
			expected: Value{Raw: "from file", Origin: OriginFile},
		},
		{
			name:     "will prefer the env var over dotenv entries",
			env:      map[string]string{"NUMBER": "from env"},
			dotenv:   "NUMBER=from dotenv",
			key:      "NUMBER",
			expected: Value{Raw: "from env", Origin: OriginEnv},
		},
		{
			name:     "will fall back to dotenv entries",
			env:      map[string]string{},
			dotenv:   "NUMBER=from dotenv",
			key:      "NUMBER",
			expected: Value{Raw: "from dotenv", Origin: OriginDotenv},
		},
		{
			name:     "will treat a set but empty env var as a hit",
			env:      map[string]string{"EMPTY": ""},
			key:      "EMPTY",
			expected: Value{Raw: "", Origin: OriginEnv},
		},
		{
			name:           "will report not found when every source abstains",
			env:            map[string]string{},
			key:            "NUMBER",
			expectNotFound: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := tc.fsys
			if fsys == nil {
				fsys = fstest.MapFS{}
			}
			if tc.dotenv != "" {
				fsys[".env"] = &fstest.MapFile{Data: []byte(tc.dotenv)}
			}

			r, err := New(
				LookupEnv(fakeEnv(tc.env)),
				FS(fsys),
				DotenvPaths(".env"),
			)
			require.NoError(t, err)

			v, err := r.Resolve(context.Background(), tc.key)
			if tc.expectNotFound {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}

func TestResolver_Resolve_hardFailures(t *testing.T) {
	t.Run("will not fall back to the env var when the indirection file is missing", func(t *testing.T) {
		r, err := New(
			LookupEnv(fakeEnv(map[string]string{
				"NUMBER":      "from env",
				"NUMBER_FILE": "secrets/missing",
			})),
			FS(fstest.MapFS{}),
			WithoutDotenv(),
		)
		require.NoError(t, err)

		_, err = r.Resolve(context.Background(), "NUMBER")

		var openErr FileOpenError
		require.ErrorAs(t, err, &openErr)
		require.Equal(t, "NUMBER", openErr.Key)
		require.Equal(t, "secrets/missing", openErr.Path)
	})

	t.Run("will fail construction when a dotenv file exists but cannot be read", func(t *testing.T) {
		_, err := New(
			LookupEnv(fakeEnv(map[string]string{})),
			FS(readFailFS{}),
			DotenvPaths(".env"),
		)

		var loadErr DotenvLoadError
		require.ErrorAs(t, err, &loadErr)
	})
}

func TestResolver_Resolve_options(t *testing.T) {
	t.Run("will honor a custom indirection suffix", func(t *testing.T) {
		r, err := New(
			LookupEnv(fakeEnv(map[string]string{"NUMBER_PATH": "secrets/number"})),
			FS(fstest.MapFS{
				"secrets/number": &fstest.MapFile{Data: []byte("42")},
			}),
			FileSuffix("_PATH"),
			WithoutDotenv(),
		)
		require.NoError(t, err)

		v, err := r.Resolve(context.Background(), "NUMBER")
		require.NoError(t, err)
		require.Equal(t, Value{Raw: "42", Origin: OriginFile}, v)
	})

	t.Run("will not consult dotenv files when disabled", func(t *testing.T) {
		r, err := New(
			LookupEnv(fakeEnv(map[string]string{})),
			FS(fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte("NUMBER=from dotenv")},
			}),
			WithoutDotenv(),
		)
		require.NoError(t, err)

		_, err = r.Resolve(context.Background(), "NUMBER")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrigin_String(t *testing.T) {
	testCases := []struct {
		origin   Origin
		expected string
	}{
		{origin: OriginFile, expected: "file"},
		{origin: OriginEnv, expected: "env"},
		{origin: OriginDotenv, expected: "dotenv"},
		{origin: OriginUnknown, expected: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.origin.String())
		})
	}
}
