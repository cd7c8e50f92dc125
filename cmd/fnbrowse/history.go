package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or edit recent searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.listHistory(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent searches, most recent first",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.listHistory(cmd)
			},
		},
		&cobra.Command{
			Use:   "rm <query>",
			Short: "Remove one recent search",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := c.searches().Remove(cmd.Context(), localOwner, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return c.printHistory(list)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget every recent search",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.searches().Clear(cmd.Context(), localOwner); err != nil {
					return err
				}
				return c.printHistory([]string{})
			},
		},
	)
	return cmd
}

func (c *cli) listHistory(cmd *cobra.Command) error {
	list, err := c.searches().Recent(cmd.Context(), localOwner)
	if err != nil {
		return err
	}
	return c.printHistory(list)
}

func (c *cli) printHistory(list []string) error {
	if c.json() {
		return c.printJSON(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(c.out, "No recent searches.")
		return nil
	}
	for i, q := range list {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, q)
	}
	return nil
}
