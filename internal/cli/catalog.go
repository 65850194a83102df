package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/igarnier/cosetta/pkg/catalog"
	"github.com/igarnier/cosetta/pkg/coset"
)

const defaultMongoURL = "mongodb://localhost:27017"

// catalogCommand creates the catalog command for browsing recorded
// enumerations.
func (c *CLI) catalogCommand() *cobra.Command {
	var mongoURL string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse enumerations recorded in MongoDB",
		Long: `Browse enumerations recorded in MongoDB.

The catalog stores every enumeration the server completes, keyed by the
presentation hash. These commands list, inspect and delete entries.

The connection URL comes from --mongo-url or the COSETTA_MONGO_URL
environment variable.`,
	}

	cmd.PersistentFlags().StringVar(&mongoURL, "mongo-url", "", "MongoDB connection URL (default $COSETTA_MONGO_URL or "+defaultMongoURL+")")

	cmd.AddCommand(c.catalogListCommand(&mongoURL))
	cmd.AddCommand(c.catalogShowCommand(&mongoURL))
	cmd.AddCommand(c.catalogDeleteCommand(&mongoURL))

	return cmd
}

// catalogStore connects to the configured MongoDB instance.
func catalogStore(ctx context.Context, mongoURL string) (*catalog.Store, error) {
	url := mongoURL
	if url == "" {
		url = os.Getenv("COSETTA_MONGO_URL")
	}
	if url == "" {
		url = defaultMongoURL
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := catalog.Connect(connectCtx, url, appName)
	if err != nil {
		return nil, fmt.Errorf("connect to catalog: %w", err)
	}
	return store, nil
}

// catalogListCommand creates the "catalog list" subcommand.
func (c *CLI) catalogListCommand(mongoURL *string) *cobra.Command {
	var (
		limit       int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded enumerations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := catalogStore(ctx, *mongoURL)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			entries, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Catalog is empty")
				return nil
			}

			if interactive {
				return c.browseCatalog(entries)
			}

			for _, e := range entries {
				name := e.Name
				if name == "" {
					name = "(unnamed)"
				}
				printKeyValue(name, fmt.Sprintf("index %s · generators %s · %s",
					StyleNumber.Render(fmt.Sprintf("%d", e.Index)),
					strings.Join(e.Generators, ","),
					formatRelativeTime(e.CreatedAt)))
				printDetail("hash %s", e.Hash[:16])
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to list")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse entries interactively")

	return cmd
}

// browseCatalog runs the interactive catalog browser and prints the coset
// table of the selected entry.
func (c *CLI) browseCatalog(entries []catalog.Entry) error {
	model := NewCatalogListModel(entries)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	selected := final.(CatalogListModel).Selected
	if selected == nil {
		return nil
	}
	return printEntryTable(*selected)
}

// catalogShowCommand creates the "catalog show" subcommand.
func (c *CLI) catalogShowCommand(mongoURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [hash]",
		Short: "Show the coset table of a recorded enumeration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := catalogStore(ctx, *mongoURL)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			entry, err := store.FindByHash(ctx, args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				printWarning("No entry with hash %s", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			return printEntryTable(*entry)
		},
	}
}

// catalogDeleteCommand creates the "catalog delete" subcommand.
func (c *CLI) catalogDeleteCommand(mongoURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [hash]",
		Short: "Delete a recorded enumeration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := catalogStore(ctx, *mongoURL)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			err = store.Delete(ctx, args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				printWarning("No entry with hash %s", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			printSuccess("Deleted entry %s", args[0])
			return nil
		},
	}
}

// printEntryTable reconstructs the snapshot stored in an entry and prints its
// coset table.
func printEntryTable(e catalog.Entry) error {
	snap := coset.Snapshot{
		Name:       e.Name,
		Generators: e.Generators,
		Relators:   e.Relators,
		Subgroup:   e.Subgroup,
		Index:      e.Index,
		Allocated:  e.Allocated,
		Action:     e.Action,
	}

	name := e.Name
	if name == "" {
		name = "(unnamed)"
	}
	printKeyValue("Group", name)
	printKeyValue("Index", StyleNumber.Render(fmt.Sprintf("%d", e.Index)))
	printKeyValue("Recorded", e.CreatedAt.Format(time.RFC3339))
	fmt.Println()
	return snap.Format(os.Stdout)
}
