package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwijayanto/autoapply/internal/store"
)

var statusCommand = &cobra.Command{
	Use:   "status <link> <submitted|processing|failed|hired>",
	Short: "Update the review status of a recorded application",
	Args:  cobra.ExactArgs(2),
	RunE:  updateStatusCmd,
}

var statusDatabaseURL string

func init() {
	statusCommand.Flags().StringVar(&statusDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(statusCommand)
}

func updateStatusCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	link := args[0]
	status := store.Status(args[1])
	if !status.Valid() {
		return fmt.Errorf("unknown status %q (want submitted, processing, failed, or hired)", args[1])
	}

	st, err := connectStore(ctx, statusDatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	app, err := st.UpdateStatus(ctx, link, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no application recorded for %s", link)
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	fmt.Printf("%s at %s is now %s.\n", app.Role, app.CompanyName, app.Status)
	return nil
}
