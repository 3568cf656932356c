// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command pizza prints out a pizza order assembled entirely from
// configuration, showing conversion chains over custom types. Try it
// with:
//
//	FULLNAME="Ada Lovelace" DESTINATION=192.0.2.1 PIZZABASE=margherita \
//	PIZZATOPPINGS=mushrooms,olives go run ./example/pizza
package main

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/z5labs/microcfg"
)

// pizzaBase is what the toppings go on.
type pizzaBase int

const (
	baseBlank pizzaBase = iota
	baseRed
	baseWhite
	baseMargherita
)

func parsePizzaBase(s string) (pizzaBase, error) {
	switch strings.ToLower(s) {
	case "blank", "vuota", "stria":
		return baseBlank, nil
	case "red", "rossa", "marinara":
		return baseRed, nil
	case "white", "bianca":
		return baseWhite, nil
	case "margherita":
		return baseMargherita, nil
	default:
		return 0, fmt.Errorf("unknown pizza base %q", s)
	}
}

func (b pizzaBase) String() string {
	switch b {
	case baseRed:
		return "red"
	case baseWhite:
		return "white"
	case baseMargherita:
		return "margherita"
	default:
		return "blank"
	}
}

// toppingsList is a comma separated list of toppings.
type toppingsList struct {
	list []string
}

var (
	fullname = microcfg.String("FULLNAME")

	destination = microcfg.Required[netip.Addr]("DESTINATION", microcfg.Chain{
		microcfg.ParseText[netip.Addr](),
	})

	base = microcfg.Required[pizzaBase]("PIZZABASE", microcfg.Chain{
		microcfg.Parse(parsePizzaBase),
	})

	// Parse the string into its parts, then wrap them, mirroring a
	// String > []string -> toppingsList chain.
	toppings = microcfg.Optional[toppingsList]("PIZZATOPPINGS", microcfg.Chain{
		microcfg.Parse(func(s string) ([]string, error) {
			return strings.Split(s, ","), nil
		}),
		microcfg.Map(func(parts []string) toppingsList {
			return toppingsList{list: parts}
		}),
	})
)

func main() {
	fmt.Println("Pizza Order")
	fmt.Println("===========")
	fmt.Println()
	fmt.Println("Base:")
	fmt.Printf("- %s\n", base())
	fmt.Println()
	fmt.Println("Toppings:")
	if ts, ok := toppings(); ok {
		for _, topping := range ts.list {
			fmt.Printf("- %s\n", topping)
		}
	}
	fmt.Println()
	fmt.Println("Deliver to:")
	fmt.Printf("%s @ %s\n", fullname(), destination())
}
