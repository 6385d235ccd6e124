package main

import (
	"fmt"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/yaml"
)

// Run executes the profile command.
func (c *ProfileCmd) Run(deps *Dependencies) error {
	b, err := yaml.MarshalProfile(deps.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}
	_, err = deps.Stdout.Write(b)
	return err
}
