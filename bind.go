// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ErrUnmarshalTarget is returned by [Resolver.Unmarshal] when the
// target is not a non-nil pointer to a struct.
var ErrUnmarshalTarget = errors.New("microcfg: unmarshal target must be a non-nil pointer to a struct")

// UnmarshalError occurs when resolved values cannot be decoded into
// the target struct.
type UnmarshalError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e UnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal resolved values: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e UnmarshalError) Unwrap() error {
	return e.Cause
}

// Unmarshal resolves every tagged field of the struct pointed at by v
// and decodes the results into it.
//
// Fields opt in with a config tag naming the key to resolve:
//
//	type Config struct {
//		Addr    string        `config:"LISTEN_ADDR"`
//		Timeout time.Duration `config:"TIMEOUT"`
//		Token   string        `config:"API_TOKEN,required"`
//	}
//
// A field whose key no source can provide is left at its zero value,
// unless the tag carries the required option, in which case Unmarshal
// reports a [RequiredError] for it. Hard source failures abort
// immediately. String values are coerced into numeric, boolean,
// [time.Duration] and [encoding.TextUnmarshaler] fields.
func (r *Resolver) Unmarshal(ctx context.Context, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrUnmarshalTarget
	}

	values := make(map[string]any)
	var missing []error

	rt := rv.Elem().Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		key, required := parseFieldTag(field.Tag.Get("config"))
		if key == "" {
			continue
		}

		val, err := r.Resolve(ctx, key)
		if errors.Is(err, ErrNotFound) {
			if required {
				missing = append(missing, RequiredError{
					Key:        key,
					TargetType: field.Type.String(),
					Cause:      err,
				})
			}
			continue
		}
		if err != nil {
			return err
		}
		values[key] = val.Raw
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           v,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return UnmarshalError{Cause: err}
	}

	err = dec.Decode(values)
	if err != nil {
		return UnmarshalError{Cause: err}
	}
	return nil
}

func parseFieldTag(tag string) (key string, required bool) {
	if tag == "" || tag == "-" {
		return "", false
	}

	key, rest, _ := strings.Cut(tag, ",")
	for _, opt := range strings.Split(rest, ",") {
		if opt == "required" {
			required = true
		}
	}
	return key, required
}
