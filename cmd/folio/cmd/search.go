package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/folio/internal/domain/search"
)

var (
	flagCategories []string
	flagSort       string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search enriched projects",
	Long:  "Filters projects by a free-text query and selected categories, ranked by relevance. The query matches project names, keywords, and keyword aliases (searching \"node\" finds Node.js projects).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&flagCategories, "category", "c", nil, "filter by category (repeatable, OR semantics)")
	searchCmd.Flags().StringVar(&flagSort, "sort", "relevance", "sort order: relevance, stars, recency, name")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	state := a.Provider.RefreshRepos(cmd.Context())
	if state.Repos == nil {
		fmt.Printf("%sno project data available%s\n", colorYellow, colorReset)
		return nil
	}

	var rank search.Ranker
	switch flagSort {
	case "stars":
		rank = search.ByStars
	case "recency":
		rank = search.ByRecency
	case "name":
		rank = search.ByName
	default:
		rank = search.ByRelevance
	}

	results := search.Search(state.Repos, query, flagCategories, a.Dict, rank)
	fmt.Printf("%s%d of %d projects%s\n", colorBold, len(results), len(state.Repos), colorReset)
	for _, r := range results {
		kws := ""
		if len(r.Keywords) > 0 {
			kws = " │ " + strings.Join(r.Keywords, ", ")
		}
		fmt.Printf("  %s%s%s ★%d%s\n", colorCyan, r.Name, colorReset, r.Stars, kws)
	}
	return nil
}
