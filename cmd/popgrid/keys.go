// ABOUTME: keys command: print the effective keymap and any conflicting keys
// ABOUTME: Bindings come from the defaults with the keys section of the settings applied

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key bindings",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprint(a.stdout, a.keys.FormatAll())
			for _, c := range a.keys.Conflicts() {
				fmt.Fprintf(a.stdout, "\nconflict: %s is bound to %v\n", c.Key, c.Actions)
			}
			return nil
		},
	}
}
