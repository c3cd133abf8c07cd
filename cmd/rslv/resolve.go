package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/resolvd/internal/resolver"
)

var (
	// resolveEntity is the entity type to search
	resolveEntity string
	// resolveFields are the lookup fields in priority order
	resolveFields []string
)

func init() {
	resolveCmd.Flags().StringVar(&resolveEntity, "entity", "", "entity type to search (required)")
	resolveCmd.Flags().StringSliceVar(&resolveFields, "fields", nil, "lookup fields in priority order (required)")
	_ = resolveCmd.MarkFlagRequired("entity")
	_ = resolveCmd.MarkFlagRequired("fields")
}

// resolveCmd resolves one input fragment to a record identifier
var resolveCmd = &cobra.Command{
	Use:   "resolve <input>",
	Short: "Resolve a free-text fragment to a record identifier",
	Long: `Resolve a free-text fragment to exactly one record identifier.

Fields are searched in the order given; an exact match in an earlier field
wins outright, otherwise the candidate sharing the longest window with the
input is chosen.

Examples:
  # Resolve a scanned product label
  rslv resolve --entity product.product --fields default_code,name "XA36773-04Y"

  # Resolve a partner by reference, falling back to name
  rslv resolve --entity res.partner --fields ref,name "ACME-123"

  # Machine-readable output
  rslv resolve --entity res.partner --fields name --json "acme corp"`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// runResolve handles the resolve command
func runResolve(cmd *cobra.Command, args []string) error {
	store, logger, cfg, cleanup, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	svc, err := resolver.NewService(store, logger, resolver.Config{
		FetchLimit: cfg.Resolver.FetchLimit,
	})
	if err != nil {
		return err
	}

	res, err := svc.FindID(cmd.Context(), resolveEntity, args[0], resolveFields)
	if err != nil {
		var noMatch *resolver.NoMatchError
		if errors.As(err, &noMatch) {
			return fmt.Errorf("no match: %w", err)
		}
		return err
	}

	if jsonOutput {
		return printJSON(res)
	}

	fmt.Printf("Record ID: %d\n", res.ID)
	fmt.Printf("Value:     %s\n", res.Raw)
	if res.Exact {
		fmt.Printf("Match:     exact\n")
	} else {
		fmt.Printf("Match:     window %q (%d candidate(s))\n", res.Window, res.Candidates)
	}
	return nil
}
