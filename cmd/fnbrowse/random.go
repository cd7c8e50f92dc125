package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

type shuffleStep struct {
	Step int    `json:"step"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type randomResult struct {
	Steps        []shuffleStep           `json:"steps"`
	Notification domainsvcs.Notification `json:"notification"`
	Detail       *appsvcs.Detail         `json:"detail"`
}

type settledPick struct {
	item models.Cosmetic
	note domainsvcs.Notification
}

// shufflePrinter prints steps as they fire. Steps arrive one at a time since
// each is scheduled by the previous one.
type shufflePrinter struct {
	c       *cli
	steps   []shuffleStep
	settled chan settledPick
}

func (p *shufflePrinter) OnStep(step int, candidate models.Cosmetic) {
	p.steps = append(p.steps, shuffleStep{Step: step, ID: candidate.ID, Name: candidate.Name})
	if !p.c.json() {
		fmt.Fprintf(p.c.out, "[%d/%d] %s\n", step, domainsvcs.ShuffleSteps, candidate.Name)
	}
}

func (p *shufflePrinter) OnSettled(chosen models.Cosmetic, n domainsvcs.Notification) {
	p.settled <- settledPick{item: chosen, note: n}
}

func (c *cli) randomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random [query]",
		Short: "Shuffle through the filtered catalog and pick one cosmetic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q, err := c.catalog(ctx)
			if err != nil {
				return err
			}
			facets := facetsFromFlags(cmd)
			if err := q.Facets().Validate(facets); err != nil {
				return err
			}
			view, err := q.View(strings.Join(args, " "), facets)
			if err != nil {
				return err
			}
			if len(view) == 0 {
				return errors.New("no cosmetics match, nothing to pick from")
			}

			printer := &shufflePrinter{c: c, settled: make(chan settledPick, 1)}
			shuffler := domainsvcs.NewShuffler(printer)
			defer shuffler.Close()
			shuffler.Start(view)

			var pick settledPick
			select {
			case pick = <-printer.settled:
			case <-ctx.Done():
				return ctx.Err()
			}

			related, err := q.Related(pick.item.ID, domainsvcs.DefaultRelatedLimit)
			if err != nil {
				return err
			}
			detail := appsvcs.DetailOf(pick.item, related)
			if err := c.viewed(q).Record(ctx, localOwner, pick.item.ID); err != nil {
				c.log.WarnContext(ctx, "recently viewed not saved", "error", err)
			}

			if c.json() {
				return c.printJSON(randomResult{Steps: printer.steps, Notification: pick.note, Detail: detail})
			}
			fmt.Fprintf(c.out, "\nYou got: %s\n\n", pick.note.Title)
			c.printDetail(detail)
			return nil
		},
	}
	addFacetFlags(cmd)
	return cmd
}
