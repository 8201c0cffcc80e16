package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/internal/service"
	"workflow-hub-be/pkg/database"
	"workflow-hub-be/pkg/events"

	pktNats "workflow-hub-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootOptions struct {
	dsn     string
	natsURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Import and inspect the workflow catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", os.Getenv("DB_CONNECTION_STRING"), "database DSN (postgres URL, sqlite://path or file:...)")
	root.PersistentFlags().StringVar(&opts.natsURL, "nats", "", "NATS URL; when set, imports are announced so running servers drop their cache")

	root.AddCommand(
		newImportCmd(opts),
		newCategoriesCmd(opts),
		newSearchCmd(opts),
	)
	return root
}

func (o *rootOptions) open() (*gorm.DB, error) {
	if o.dsn == "" {
		return nil, fmt.Errorf("no database configured, pass --dsn or set DB_CONNECTION_STRING")
	}
	return database.NewGormDBFromDSN(o.dsn)
}

func (o *rootOptions) catalog(db *gorm.DB) service.ICatalogService {
	return service.NewCatalogService(unitofwork.NewRepositoryFactory(db), nil)
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a catalog JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			db, err := opts.open()
			if err != nil {
				return err
			}

			var publishers []events.Publisher
			if opts.natsURL != "" {
				pub, err := pktNats.NewPublisher(opts.natsURL)
				if err != nil {
					color.Yellow("Warning: NATS unavailable, servers keep their cache until it expires: %v", err)
				} else {
					defer pub.Close()
					publishers = append(publishers, pub)
				}
			}

			importer := service.NewImportService(
				unitofwork.NewRepositoryFactory(db),
				opts.catalog(db),
				logger.NewNopLogger(),
				publishers...,
			)
			res, err := importer.Import(context.Background(), raw)
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d workflows in %d categories\n", res.Workflows, res.Categories)
			return nil
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and their workflow counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open()
			if err != nil {
				return err
			}

			categories, err := opts.catalog(db).Categories(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				color.New(color.FgYellow).Fprintln(out, "No categories yet")
				return nil
			}
			for _, c := range categories {
				color.New(color.FgCyan, color.Bold).Fprintf(out, "%-30s", c.Name)
				fmt.Fprintf(out, " %-30s %d\n", c.CategoryUrl, c.TotalCountExtracted)
			}
			return nil
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search workflows by name or description",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open()
			if err != nil {
				return err
			}

			workflows, err := opts.catalog(db).List(context.Background(), &dto.ListWorkflowsRequest{
				Query:    strings.Join(args, " "),
				Category: category,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(workflows) == 0 {
				color.New(color.FgYellow).Fprintln(out, "No workflows found")
				return nil
			}
			for _, w := range workflows {
				color.New(color.FgCyan, color.Bold).Fprintf(out, "%s", w.WorkflowName)
				fmt.Fprintf(out, " [%s] %s\n", w.PaidOrFree, w.WorkflowUrl)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category slug to search within")
	return cmd
}
