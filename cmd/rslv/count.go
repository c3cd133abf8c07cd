package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
)

var (
	// countEntity is the entity type to count
	countEntity string
	// countField is the field the predicate applies to
	countField string
	// countContains filters to values containing this fragment
	countContains string
	// countEquals filters to values equal to this string
	countEquals string
)

func init() {
	countCmd.Flags().StringVar(&countEntity, "entity", "", "entity type to count (required)")
	countCmd.Flags().StringVar(&countField, "field", "", "field the filter applies to (required)")
	countCmd.Flags().StringVar(&countContains, "contains", "", "count records whose field contains this value")
	countCmd.Flags().StringVar(&countEquals, "equals", "", "count records whose field equals this value")
	_ = countCmd.MarkFlagRequired("entity")
	_ = countCmd.MarkFlagRequired("field")
	countCmd.MarkFlagsMutuallyExclusive("contains", "equals")
}

// countCmd counts matching records without resolving
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count records matching a filter",
	Long: `Count the records whose field matches a filter, without resolving.

Useful for sizing a field before pointing the resolver at it, or for
checking connectivity to the record store.

Examples:
  # Count every partner with a name
  rslv count --entity res.partner --field name

  # Count products whose code contains a fragment
  rslv count --entity product.product --field default_code --contains A36`,
	RunE: runCount,
}

// runCount handles the count command
func runCount(cmd *cobra.Command, args []string) error {
	store, _, _, cleanup, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	pred, value := recordstore.Contains, countContains
	if countEquals != "" {
		pred, value = recordstore.Equals, countEquals
	}

	n, err := store.Count(cmd.Context(), countEntity, countField, pred, value)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]int{"count": n})
	}

	fmt.Printf("%d\n", n)
	return nil
}
