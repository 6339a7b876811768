package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cleanCommand = &cobra.Command{
	Use:   "clean",
	Short: "Delete every recorded application",
	Long:  "Empties the applications table. The agent will treat every posting as new afterwards, so a rerun can apply to postings it already applied to on the site.",
	RunE:  cleanApplicationsCmd,
}

var (
	cleanDatabaseURL string
	cleanYes         bool
)

func init() {
	cleanCommand.Flags().StringVar(&cleanDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cleanCommand.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(cleanCommand)
}

func cleanApplicationsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := connectStore(ctx, cleanDatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	count, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count applications: %w", err)
	}
	if count == 0 {
		fmt.Println("No applications recorded, nothing to clean.")
		return nil
	}

	if !cleanYes {
		fmt.Printf("This deletes all %d recorded application(s). The duplicate guard starts from scratch. Continue? [y/N] ", count)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted, err := st.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear applications: %w", err)
	}
	fmt.Printf("Deleted %d application record(s).\n", deleted)
	return nil
}
