// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command echo prints a single required configuration value back to
// the user. Try it with:
//
//	ECHO="hello world" go run ./example/echo
package main

import (
	"fmt"

	"github.com/z5labs/microcfg"
)

var echo = microcfg.String("ECHO")

func main() {
	fmt.Printf("ECHOing back: %s\n", echo())
}
