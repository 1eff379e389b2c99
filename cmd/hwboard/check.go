// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/db47h/hwboard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <layout.yaml>...",
		Short: "Build board layouts and report their state",
		Long: `Builds each layout, runs a solve pass and prints a summary of the
resulting network. Groups driven by several setters are reported as conflicts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, name := range args {
				if err := a.check(cmd, name); err != nil {
					zap.L().Error("check failed", zap.String("file", name), zap.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
					failed++
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d layouts failed", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) check(cmd *cobra.Command, name string) error {
	d, n, err := a.loadLayout(name)
	if err != nil {
		return err
	}
	conflicts := 0
	for _, g := range n.Groups() {
		if g.Level() == hwboard.Multiple {
			conflicts++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %d components, %d groups, %d gates, %d inputs, %d outputs, %d conflicts\n",
		name, d.Name, n.Len(), len(n.Groups()), len(n.Casings()), n.InputCount(), n.OutputCount(), conflicts)
	if conflicts > 0 {
		return errors.Errorf("%d groups with multiple drivers", conflicts)
	}
	return nil
}
