// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Step is one typed transformation in a [Chain]. Steps are built with
// [Parse], [Map] and [TryMap].
type Step interface {
	kind() stepKind
	target() string
	apply(any) (any, error)
}

type stepKind int

const (
	kindParse stepKind = iota
	kindMap
	kindTryMap
)

// Chain is an ordered list of conversion steps applied to a raw string
// value. The first step always consumes a string; every later step
// consumes the output of the step before it. An empty chain leaves the
// value as a string.
type Chain []Step

// ParseError occurs when a [Parse] step fails. Later steps of the
// chain are never attempted.
type ParseError struct {
	Step       int
	TargetType string
	Cause      error
}

// Error implements the [builtin.error] interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("failed to parse value as %s at chain step %d: %s", e.TargetType, e.Step, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ParseError) Unwrap() error {
	return e.Cause
}

// ConvertError occurs when a [TryMap] step fails. Later steps of the
// chain are never attempted.
type ConvertError struct {
	Step       int
	TargetType string
	Cause      error
}

// Error implements the [builtin.error] interface.
func (e ConvertError) Error() string {
	return fmt.Sprintf("failed to convert value to %s at chain step %d: %s", e.TargetType, e.Step, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConvertError) Unwrap() error {
	return e.Cause
}

// ChainError occurs when a chain is built such that a step's input
// type does not match the output type of the step before it. It always
// indicates a programming mistake in the chain, never a bad value.
type ChainError struct {
	Step int
	Want string
	Got  string
}

// Error implements the [builtin.error] interface.
func (e ChainError) Error() string {
	return fmt.Sprintf("chain step %d expects %s but received %s", e.Step, e.Want, e.Got)
}

// ChainResultError occurs when the final value produced by a chain is
// not of the type the caller asked for.
type ChainResultError struct {
	Want string
	Got  string
}

// Error implements the [builtin.error] interface.
func (e ChainResultError) Error() string {
	return fmt.Sprintf("chain produced %s instead of %s", e.Got, e.Want)
}

// Run applies each step of the chain, in order, to raw. It stops at
// the first failing step and reports it as a [ParseError],
// [ConvertError] or [ChainError].
func (c Chain) Run(raw string) (any, error) {
	var v any = raw
	for i, step := range c {
		out, err := step.apply(v)
		if err == nil {
			v = out
			continue
		}

		var cerr ChainError
		if errors.As(err, &cerr) {
			cerr.Step = i
			return nil, cerr
		}
		if step.kind() == kindParse {
			return nil, ParseError{Step: i, TargetType: step.target(), Cause: err}
		}
		return nil, ConvertError{Step: i, TargetType: step.target(), Cause: err}
	}
	return v, nil
}

// Convert runs chain against raw and asserts the final value is a T.
func Convert[T any](raw string, chain Chain) (T, error) {
	var zero T
	v, err := chain.Run(raw)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, ChainResultError{Want: typeName[T](), Got: typeNameOf(v)}
	}
	return t, nil
}

type parseStep[T any] struct {
	fn func(string) (T, error)
}

func (s parseStep[T]) kind() stepKind { return kindParse }
func (s parseStep[T]) target() string { return typeName[T]() }

func (s parseStep[T]) apply(v any) (any, error) {
	raw, ok := v.(string)
	if !ok {
		return nil, ChainError{Want: "string", Got: typeNameOf(v)}
	}
	t, err := s.fn(raw)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Parse builds a fallible string to T step from any parsing function,
// for example [strconv.Atoi] or [time.ParseDuration].
func Parse[T any](fn func(string) (T, error)) Step {
	return parseStep[T]{fn: fn}
}

type mapStep[T1, T2 any] struct {
	fn func(T1) T2
}

func (s mapStep[T1, T2]) kind() stepKind { return kindMap }
func (s mapStep[T1, T2]) target() string { return typeName[T2]() }

func (s mapStep[T1, T2]) apply(v any) (any, error) {
	in, ok := v.(T1)
	if !ok {
		return nil, ChainError{Want: typeName[T1](), Got: typeNameOf(v)}
	}
	return s.fn(in), nil
}

// Map builds an infallible T1 to T2 step.
func Map[T1, T2 any](fn func(T1) T2) Step {
	return mapStep[T1, T2]{fn: fn}
}

type tryMapStep[T1, T2 any] struct {
	fn func(T1) (T2, error)
}

func (s tryMapStep[T1, T2]) kind() stepKind { return kindTryMap }
func (s tryMapStep[T1, T2]) target() string { return typeName[T2]() }

func (s tryMapStep[T1, T2]) apply(v any) (any, error) {
	in, ok := v.(T1)
	if !ok {
		return nil, ChainError{Want: typeName[T1](), Got: typeNameOf(v)}
	}
	t, err := s.fn(in)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TryMap builds a fallible T1 to T2 step.
func TryMap[T1, T2 any](fn func(T1) (T2, error)) Step {
	return tryMapStep[T1, T2]{fn: fn}
}

// ParseString is an identity step for spelling out string typed chains
// explicitly.
func ParseString() Step {
	return Parse(func(s string) (string, error) {
		return s, nil
	})
}

// ParseBool parses the raw value with [strconv.ParseBool].
func ParseBool() Step {
	return Parse(strconv.ParseBool)
}

// ParseInt parses the raw value with [strconv.Atoi].
func ParseInt() Step {
	return Parse(strconv.Atoi)
}

// ParseInt64 parses the raw value as a base 10 int64.
func ParseInt64() Step {
	return Parse(func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// ParseUint64 parses the raw value as a base 10 uint64.
func ParseUint64() Step {
	return Parse(func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
}

// ParseFloat64 parses the raw value with [strconv.ParseFloat].
func ParseFloat64() Step {
	return Parse(func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// ParseDuration parses the raw value with [time.ParseDuration].
func ParseDuration() Step {
	return Parse(time.ParseDuration)
}

// ParseText parses the raw value into any type whose pointer
// implements [encoding.TextUnmarshaler], for example [netip.Addr].
func ParseText[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}]() Step {
	return Parse(func(s string) (T, error) {
		var v T
		err := PT(&v).UnmarshalText([]byte(s))
		return v, err
	})
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func typeNameOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
