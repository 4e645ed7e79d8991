package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/folio/internal/domain/search"
)

var flagAllCategories bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show technology categories across projects",
	Long:  "Lists the categories found in enriched project READMEs with per-category project counts and matched keywords. With --all, lists every dictionary category instead.",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&flagAllCategories, "all", false, "list all dictionary categories, not just active ones")
}

func runCategories(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var infos []search.CategoryInfo
	if flagAllCategories {
		infos = search.AllCategories(a.Dict)
	} else {
		state := a.Provider.RefreshRepos(cmd.Context())
		infos = search.ActiveCategories(state.Repos)
	}

	if len(infos) == 0 {
		fmt.Printf("%sno categories found%s\n", colorGray, colorReset)
		return nil
	}
	for _, info := range infos {
		count := ""
		if info.Count > 0 {
			count = fmt.Sprintf(" (%d projects)", info.Count)
		}
		fmt.Printf("%s %s%s%s%s\n", info.Icon, colorBold, info.DisplayName, colorReset, count)
		if len(info.Keywords) > 0 {
			fmt.Printf("   %s%s%s\n", colorGray, strings.Join(info.Keywords, ", "), colorReset)
		}
	}
	return nil
}
