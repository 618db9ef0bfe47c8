// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryoshi/vnfetch/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the built-in tag catalog by category",
	Long: `Catalog lists the tag names vnfetch can resolve to VNDB tag ids,
grouped by category. With --validate it instead checks the mapping for tag-id
collisions (two labels resolving to the same id) and reports them.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().Bool("validate", false, "check the tag mapping for duplicate ids")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	c := catalog.New()

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		report := c.Validate()
		fmt.Printf("%d mappings, %d unique tag ids\n", report.TotalMappings, report.UniqueIDs)
		if !report.HasDuplicates() {
			fmt.Println("No duplicate tag ids.")
			return nil
		}
		ids := make([]string, 0, len(report.Duplicates))
		for id := range report.Duplicates {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(os.Stderr, "warning: tag id %s claimed by: %s\n",
				id, strings.Join(report.Duplicates[id], ", "))
		}
		return nil
	}

	available := c.Available()
	categories := make([]string, 0, len(available))
	for category := range available {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		fmt.Printf("%s:\n", category)
		for _, label := range available[category] {
			fmt.Printf("  %s\n", label)
		}
	}
	return nil
}
