// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package microcfg_test

import (
	"context"
	"fmt"

	"github.com/z5labs/microcfg"
)

// chatID wraps the numeric id of a chat to respond in.
type chatID struct {
	n uint64
}

func Example() {
	// Accessors are cheap to declare: nothing is resolved until the
	// first call, and every call after that returns the memoized value.
	applicationName := microcfg.String("APPLICATION_NAME")

	maxConcurrentUsers := microcfg.Required[uint64]("MAX_CONCURRENT_USERS", microcfg.Chain{
		microcfg.ParseUint64(),
	})

	shownAlert := microcfg.OptionalString("SHOWN_ALERT")

	fmt.Println(applicationName())
	fmt.Println(maxConcurrentUsers())
	if alert, ok := shownAlert(); ok {
		fmt.Println(alert)
	}
}

func ExampleChain() {
	// Parse the string as a uint64, then convert it to a chatID,
	// mirroring a String > u64 -> ChatId conversion chain.
	respondTo := microcfg.Required[chatID]("RESPOND_TO_MESSAGES_IN", microcfg.Chain{
		microcfg.ParseUint64(),
		microcfg.Map(func(n uint64) chatID {
			return chatID{n: n}
		}),
	})

	fmt.Println(respondTo())
}

func ExampleResolver_Resolve() {
	r, err := microcfg.New()
	if err != nil {
		panic(err)
	}

	v, err := r.Resolve(context.Background(), "DATABASE_URI")
	if err != nil {
		panic(err)
	}
	fmt.Println(v.Origin, v.Raw)
}

func ExampleResolver_Unmarshal() {
	type config struct {
		DatabaseURI string `config:"DATABASE_URI,required"`
		Port        int    `config:"PORT"`
	}

	r, err := microcfg.New()
	if err != nil {
		panic(err)
	}

	var cfg config
	err = r.Unmarshal(context.Background(), &cfg)
	if err != nil {
		panic(err)
	}
	fmt.Println(cfg.DatabaseURI, cfg.Port)
}
