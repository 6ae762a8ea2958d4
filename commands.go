package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"germination_tracker/library"
)

var listSort string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the library by section",
	Long: `Print every section and its plants in display order.

With --sort the library is shown under that option without changing the
stored one.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var sortCmd = &cobra.Command{
	Use:       "sort <option>",
	Short:     "Change the stored sort option",
	Long:      "Change the stored sort option. Options: byPlantName, byDateDescending, byDateAscending, byActive.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: sortOptionNames(),
	RunE:      runSort,
}

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "sort option to list by")
}

func sortOptionNames() []string {
	var names []string
	for _, o := range library.SortOptions() {
		names = append(names, o.String())
	}
	return names
}

func runList(cmd *cobra.Command, args []string) error {
	gts, err := NewGTS(cmd.Context(), WithConfig(cfg), WithLogger(log))
	if err != nil {
		return err
	}
	defer gts.Close()

	view := gts.Library().Library()
	if listSort != "" {
		option := library.SortOption(listSort)
		if !option.Valid() {
			return fmt.Errorf("unknown sort option %q", listSort)
		}
		o := library.NewOrganizer(gts.plants, option)
		o.Organize()
		view = library.NewLibraryView(option, o.Sections())
	}
	return printLibrary(cmd.OutOrStdout(), view)
}

func runSort(cmd *cobra.Command, args []string) error {
	option := library.SortOption(args[0])
	if !option.Valid() {
		return fmt.Errorf("unknown sort option %q", args[0])
	}

	gts, err := NewGTS(cmd.Context(), WithConfig(cfg), WithLogger(log))
	if err != nil {
		return err
	}
	defer gts.Close()

	if _, err := gts.Library().SetSortOption(cmd.Context(), option); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sorting %s\n", option.Title())
	return nil
}

func printLibrary(out io.Writer, view library.LibraryView) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Sort: %s\n", view.SortOption.Title())
	for _, section := range view.Sections {
		fmt.Fprintf(w, "\n%s (%d)\n", section.Name, len(section.Rows))
		for _, p := range section.Rows {
			fmt.Fprintf(w, "  %s\t%s\t%s\tgerminated %d\tdied %d\n",
				p.Name, p.SowDate.Format("2006-01-02"), p.Stage, p.Germinations, p.Deaths)
		}
	}
	return w.Flush()
}
