// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/book"
	"github.com/db47h/hwboard/hwtest"
	"github.com/spf13/cobra"
)

func newBookCmd(a *app) *cobra.Command {
	var truth bool
	cmd := &cobra.Command{
		Use:   "book <file.hwb>...",
		Short: "Compile component books and list their parts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				ps, err := book.LoadFile(name)
				if err != nil {
					return err
				}
				for _, p := range ps {
					printPart(cmd, p)
					if !truth {
						continue
					}
					n, _, err := hwtest.Wrap(p, a.options()...)
					if err != nil {
						return err
					}
					if err = printTable(cmd, n); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&truth, "truth", "t", false, "print the truth table of each part")
	return cmd
}

func newPartsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parts",
		Short: "List registered parts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range a.reg.Names() {
				p, _ := a.reg.Lookup(name)
				printPart(cmd, p)
			}
		},
	}
}

func printPart(cmd *cobra.Command, p *hwboard.PartSpec) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> (%s)\n", p.Name, strings.Join(p.Inputs, ", "), strings.Join(p.Outputs, ", "))
}
