// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"os"
)

// envVarSource reads values directly from the process environment.
//
// An unset variable is an abstention, not a failure. A variable which
// is set to the empty string still counts as a hit.
type envVarSource struct {
	lookupEnv func(string) (string, bool)
}

func newEnvVarSource(lookupEnv func(string) (string, bool)) envVarSource {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return envVarSource{
		lookupEnv: lookupEnv,
	}
}

func (src envVarSource) lookup(_ context.Context, key string) (string, error) {
	v, ok := src.lookupEnv(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}
