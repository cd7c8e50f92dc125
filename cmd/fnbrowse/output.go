package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

func (c *cli) json() bool { return c.format == "json" }

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printItems(items []models.Cosmetic) {
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No cosmetics found.")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tRARITY\tSET")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Name, tagLabel(item.Type), models.RarityLabel(item.Rarity.Value), orDash(item.SetName()))
	}
	tw.Flush() //nolint:errcheck
}

func (c *cli) printPage(p *appsvcs.Page) {
	c.printItems(p.Items)
	more := ""
	if p.HasMore {
		more = fmt.Sprintf(", next: --page %d", p.Page+1)
	}
	fmt.Fprintf(c.out, "\nShowing %s of %s cosmetics (page %d%s)\n",
		humanize.Comma(int64(len(p.Items))), humanize.Comma(int64(p.Total)), p.Page, more)
}

func (c *cli) printDetail(d *appsvcs.Detail) {
	item := d.Cosmetic
	fmt.Fprintf(c.out, "%s\n", item.Name)
	fmt.Fprintf(c.out, "  %s %s\n", d.RarityLabel, tagLabel(item.Type))
	if item.Description != "" {
		fmt.Fprintf(c.out, "  %s\n", item.Description)
	}
	if intro := item.IntroductionText(); intro != "" {
		fmt.Fprintf(c.out, "  %s\n", intro)
	}
	if set := item.SetName(); set != "" {
		fmt.Fprintf(c.out, "  Set: %s\n", set)
	}
	fmt.Fprintf(c.out, "  Image: %s\n", d.ImageURL)
	fmt.Fprintf(c.out, "  ID: %s\n", item.ID)

	if len(d.Related) > 0 {
		fmt.Fprintln(c.out, "\nRelated")
		c.printItems(d.Related)
	}
}

func tagLabel(t models.Tag) string {
	if t.DisplayValue != "" {
		return t.DisplayValue
	}
	return orDash(t.Value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
