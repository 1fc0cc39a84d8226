// Package enum provides a pflag.Value that only accepts a fixed set of options.
package enum

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Flag is a string flag restricted to a set of options. The first option is the default.
type Flag struct {
	options []string
	value   string
}

// New creates a Flag over options. It panics if no options are given.
func New(options ...string) *Flag {
	if len(options) == 0 {
		panic("enum flag requires at least one option")
	}
	return &Flag{options: options, value: options[0]}
}

func (f *Flag) String() string {
	return f.value
}

func (f *Flag) Set(value string) error {
	if !slices.Contains(f.options, value) {
		return fmt.Errorf("must be one of %s", f.usage())
	}
	f.value = value
	return nil
}

func (f *Flag) Type() string {
	return "enum"
}

func (f *Flag) usage() string {
	return "{" + strings.Join(f.options, "|") + "}"
}

// Var defines an enum flag with the given name, options and usage.
func Var(flags *pflag.FlagSet, name string, options []string, usage string) {
	VarP(flags, name, "", options, usage)
}

// VarP is like Var, but accepts a shorthand letter that can be used after a single dash.
func VarP(flags *pflag.FlagSet, name, shorthand string, options []string, usage string) {
	f := New(options...)
	flags.VarP(f, name, shorthand, fmt.Sprintf("%s %s", f.usage(), usage))
}

// Get returns the value of the enum flag with the given name.
func Get(flags *pflag.FlagSet, name string) (string, error) {
	flag := flags.Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("flag %q not defined", name)
	}
	f, ok := flag.Value.(*Flag)
	if !ok {
		return "", fmt.Errorf("flag %q is not an enum flag", name)
	}
	return f.String(), nil
}
