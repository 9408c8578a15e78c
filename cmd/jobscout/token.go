package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jobscout-engine/internal/secrets"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "manage the Telegram bot token in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "store the bot token (read from stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			fmt.Fprint(os.Stderr, "bot token: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			if err := secrets.SetBotToken(a.cfg.Telegram.KeyringAccount, strings.TrimSpace(line)); err != nil {
				return err
			}
			fmt.Println("token stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "remove the bot token from the keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := secrets.DeleteBotToken(a.cfg.Telegram.KeyringAccount); err != nil {
				return err
			}
			fmt.Println("token removed")
			return nil
		},
	})

	return cmd
}
