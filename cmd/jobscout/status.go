package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"jobscout-engine/internal/resume"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "print store statistics and the loaded resume profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(context.Background())
		},
	}
}

func runStatus(ctx context.Context) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	stats, err := a.db.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("tracked:      %d\n", stats.TotalSeen)
	fmt.Printf("delivered:    %d\n", stats.TotalDelivered)
	fmt.Printf("found today:  %d\n", stats.FoundToday)

	sources := make([]string, 0, len(stats.BySource))
	for s := range stats.BySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		fmt.Printf("  %-10s %d\n", s, stats.BySource[s])
	}

	profile, err := resume.LoadSnapshot(a.cfg.App.DataDir)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("resume:       not loaded (scoring uses the neutral baseline)")
	} else {
		fmt.Printf("resume:       %d skills, %d yrs experience, %d certification(s)\n",
			len(profile.Skills), profile.ExperienceYears, len(profile.Certifications))
	}
	return nil
}
