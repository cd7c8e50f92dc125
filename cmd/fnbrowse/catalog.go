package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

func (c *cli) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search cosmetics by name",
		Long:  "Search cosmetics by name and facets. Each page adds page-size items to what is shown, like scrolling further down.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			if pageSize < 1 || pageSize > 100 {
				return fmt.Errorf("--page-size must be between 1 and 100")
			}

			q, err := c.catalog(ctx)
			if err != nil {
				return err
			}
			result, err := q.Search(query, facetsFromFlags(cmd), page, pageSize)
			if err != nil {
				return err
			}
			if _, err := c.searches().Commit(ctx, localOwner, query); err != nil {
				c.log.WarnContext(ctx, "recent search not saved", "error", err)
			}

			if c.json() {
				return c.printJSON(result)
			}
			c.printPage(result)
			return nil
		},
	}
	addFacetFlags(cmd)
	cmd.Flags().IntP("page", "p", 1, "Page to show")
	cmd.Flags().Int("page-size", domainsvcs.DefaultPageSize, "Items per page")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one cosmetic with related items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := c.catalog(ctx)
			if err != nil {
				return err
			}
			detail, err := q.Detail(args[0])
			if err != nil {
				return err
			}
			if err := c.viewed(q).Record(ctx, localOwner, args[0]); err != nil {
				c.log.WarnContext(ctx, "recently viewed not saved", "error", err)
			}

			if c.json() {
				return c.printJSON(detail)
			}
			c.printDetail(detail)
			return nil
		},
	}
}

func (c *cli) relatedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <id>",
		Short: "List cosmetics related to one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 1 || limit > 20 {
				return fmt.Errorf("--limit must be between 1 and 20")
			}
			q, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			items, err := q.Related(args[0], limit)
			if err != nil {
				return err
			}
			if c.json() {
				return c.printJSON(items)
			}
			c.printItems(items)
			return nil
		},
	}
	cmd.Flags().IntP("limit", "l", domainsvcs.DefaultRelatedLimit, "Max related items")
	return cmd
}

func (c *cli) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "List the members of a set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			items := appsvcs.NewSetService(c.source(), nil, 0, c.log).Items(cmd.Context(), name)
			if c.json() {
				return c.printJSON(items)
			}
			c.printItems(items)
			return nil
		},
	}
}
