package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jobscout-engine/internal/resume"
)

func newResumeCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "resume [file]",
		Short: "load a plain-text resume for fit scoring, or clear it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			if clear {
				if err := resume.SaveSnapshot(a.cfg.App.DataDir, nil); err != nil {
					return err
				}
				fmt.Println("resume cleared; scoring falls back to the neutral baseline")
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("provide a resume file, or --clear")
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			profile := resume.Parse(string(text))
			if err := resume.SaveSnapshot(a.cfg.App.DataDir, profile); err != nil {
				return err
			}

			fmt.Printf("resume loaded: %d skills, %d yrs experience\n",
				len(profile.Skills), profile.ExperienceYears)
			if len(profile.Skills) > 0 {
				fmt.Println("skills:", strings.Join(profile.Skills, ", "))
			}
			if len(profile.Certifications) > 0 {
				fmt.Println("certifications:", strings.Join(profile.Certifications, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "remove the stored resume profile")
	return cmd
}
