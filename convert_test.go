// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg

import (
	"errors"
	"net/netip"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type chatID struct {
	n uint64
}

func TestChain_Run(t *testing.T) {
	t.Run("will leave the value as a string when the chain is empty", func(t *testing.T) {
		v, err := Chain(nil).Run("hello")
		require.NoError(t, err)
		require.Equal(t, "hello", v)
	})

	t.Run("will chain a parse into an infallible conversion", func(t *testing.T) {
		chain := Chain{
			ParseUint64(),
			Map(func(n uint64) chatID {
				return chatID{n: n}
			}),
		}

		v, err := chain.Run("42")
		require.NoError(t, err)
		require.Equal(t, chatID{n: 42}, v)
	})

	t.Run("will stop at the first failing step", func(t *testing.T) {
		mapped := false
		chain := Chain{
			ParseUint64(),
			Map(func(n uint64) chatID {
				mapped = true
				return chatID{n: n}
			}),
		}

		_, err := chain.Run("abc")

		var parseErr ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, 0, parseErr.Step)
		require.Equal(t, "uint64", parseErr.TargetType)
		require.NotNil(t, parseErr.Cause)
		require.False(t, mapped)
	})

	t.Run("will report a fallible conversion failure with its step index", func(t *testing.T) {
		boom := errors.New("out of range")
		chain := Chain{
			ParseInt(),
			TryMap(func(n int) (uint8, error) {
				if n < 0 || n > 255 {
					return 0, boom
				}
				return uint8(n), nil
			}),
		}

		_, err := chain.Run("300")

		var convErr ConvertError
		require.ErrorAs(t, err, &convErr)
		require.Equal(t, 1, convErr.Step)
		require.Equal(t, "uint8", convErr.TargetType)
		require.ErrorIs(t, err, boom)
	})

	t.Run("will report a mismatched step input type", func(t *testing.T) {
		chain := Chain{
			Map(func(n int) int {
				return n * 2
			}),
		}

		_, err := chain.Run("1")

		var chainErr ChainError
		require.ErrorAs(t, err, &chainErr)
		require.Equal(t, 0, chainErr.Step)
		require.Equal(t, "int", chainErr.Want)
		require.Equal(t, "string", chainErr.Got)
	})
}

func TestConvert(t *testing.T) {
	t.Run("will return the typed final value", func(t *testing.T) {
		n, err := Convert[uint32]("1", Chain{
			Parse(func(s string) (uint32, error) {
				v, err := strconv.ParseUint(s, 10, 32)
				return uint32(v), err
			}),
		})
		require.NoError(t, err)
		require.Equal(t, uint32(1), n)
	})

	t.Run("will fail when the chain result is not the requested type", func(t *testing.T) {
		_, err := Convert[int]("1", Chain{ParseUint64()})

		var resultErr ChainResultError
		require.ErrorAs(t, err, &resultErr)
		require.Equal(t, "int", resultErr.Want)
		require.Equal(t, "uint64", resultErr.Got)
	})
}

func TestParseSteps(t *testing.T) {
	testCases := []struct {
		name     string
		step     Step
		raw      string
		expected any
	}{
		{name: "string identity", step: ParseString(), raw: "abc ", expected: "abc "},
		{name: "bool", step: ParseBool(), raw: "true", expected: true},
		{name: "int", step: ParseInt(), raw: "-7", expected: -7},
		{name: "int64", step: ParseInt64(), raw: "-7", expected: int64(-7)},
		{name: "uint64", step: ParseUint64(), raw: "7", expected: uint64(7)},
		{name: "float64", step: ParseFloat64(), raw: "1.5", expected: 1.5},
		{name: "duration", step: ParseDuration(), raw: "1m30s", expected: 90 * time.Second},
		{name: "text unmarshaler", step: ParseText[netip.Addr](), raw: "127.0.0.1", expected: netip.MustParseAddr("127.0.0.1")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Chain{tc.step}.Run(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
		})
	}
}
