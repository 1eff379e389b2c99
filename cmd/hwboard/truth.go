// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/hwtest"
	"github.com/db47h/hwboard/truthtable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTruthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "truth <layout.yaml | PART>",
		Short: "Print the truth table of a layout or a part",
		Long: `Prints the truth table of a board layout file or of a registered part.
Undefined outputs print as x.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.board(args[0])
			if err != nil {
				return err
			}
			return printTable(cmd, n)
		},
	}
}

// board returns a network for a layout file or a part name.
//
func (a *app) board(name string) (*hwboard.Network, error) {
	if isFile(name) {
		_, n, err := a.loadLayout(name)
		return n, err
	}
	spec, ok := a.reg.Lookup(name)
	if !ok {
		return nil, errors.Wrap(hwboard.ErrUnknownPart, name)
	}
	n, _, err := hwtest.Wrap(spec, a.options()...)
	return n, err
}

func printTable(cmd *cobra.Command, n *hwboard.Network) error {
	t, err := truthtable.Build(n)
	if err != nil {
		return err
	}
	return t.Format(cmd.OutOrStdout(), pinNames(n.InputPins()), pinNames(n.OutputPins()))
}

func pinNames(ps []*hwboard.BoardPin) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}
