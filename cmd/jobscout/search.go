package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jobscout-engine/internal/agent"
	"jobscout-engine/internal/scrape"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "run one search cycle and print the ranked batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context())
		},
	}
}

func runSearch(ctx context.Context) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if ctx == nil {
		ctx = context.Background()
	}
	session, err := agent.New(ctx, a.db, a.cfg, scrape.FromConfig(a.cfg), a.log)
	if err != nil {
		return err
	}

	res, err := session.RunSearch(ctx)
	if err != nil {
		return err
	}
	session.Cleanup(ctx)

	fmt.Printf("scraped %d, malformed %d, duplicates %d, excluded %d, ranked %d\n",
		res.Stats.Raw, res.Stats.Malformed, res.Stats.Duplicates, res.Stats.Excluded, res.Stats.Ranked)

	for i, p := range res.Delivered {
		fmt.Printf("%2d. [%3d] %s | %s | %s (%s, %s)\n",
			i+1, p.FitScore, p.Title, p.Company, p.LocationRaw, p.LocationClass, p.Source)
		if p.URL != "" {
			fmt.Printf("          %s\n", p.URL)
		}
	}
	if res.MoreRemain {
		fmt.Println("more postings remain in the batch")
	}
	return nil
}
