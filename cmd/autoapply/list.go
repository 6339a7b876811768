package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwijayanto/autoapply/internal/store"
)

var listCommand = &cobra.Command{
	Use:   "list",
	Short: "List all recorded applications",
	RunE:  listApplicationsCmd,
}

var listDatabaseURL string

func init() {
	listCommand.Flags().StringVar(&listDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(listCommand)
}

// connectStore opens the record store, falling back to DATABASE_URL.
func connectStore(ctx context.Context, databaseURL string) (*store.Store, error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("a database URL is required (--db-url or DATABASE_URL)")
	}
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := st.Init(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return st, nil
}

func listApplicationsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st, err := connectStore(ctx, listDatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	apps, err := st.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	if len(apps) == 0 {
		fmt.Println("No applications recorded yet.")
		return nil
	}

	for _, app := range apps {
		salary := "negotiable"
		if app.SalaryMin > 0 {
			salary = fmt.Sprintf("IDR %d", app.SalaryMin)
		}
		fmt.Printf("[%s] %s at %s (%s, %s)\n", app.Status, app.Role, app.CompanyName, salary, app.CreatedAt.Format("2006-01-02"))
		fmt.Printf("    %s\n", app.Link)
	}
	fmt.Printf("\n%d application(s) recorded.\n", len(apps))
	return nil
}
