package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/folio/internal/domain/search"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [term]",
	Short: "Suggest search terms",
	Long:  "Prints keyword suggestions for a partial search term, drawn from the keywords of enriched projects. With no term, prints the most frequent keywords.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	term := ""
	if len(args) == 1 {
		term = args[0]
	}

	state := a.Provider.RefreshRepos(cmd.Context())
	suggestions := search.Suggestions(state.Repos, term)
	if len(suggestions) == 0 {
		fmt.Printf("%sno suggestions%s\n", colorGray, colorReset)
		return nil
	}
	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}
