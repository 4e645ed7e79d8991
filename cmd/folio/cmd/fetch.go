package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and enrich the profile and repositories",
	Long:  "Fetches the configured user's profile and repository list, enriches each repository with commit counts and README keywords, and prints a summary. Cached data within its freshness window is served without remote calls.",
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	state := a.Provider.RefreshUser(ctx)
	state = a.Provider.RefreshRepos(ctx)

	if state.User != nil {
		staleMark := ""
		if state.UserStale {
			staleMark = fmt.Sprintf(" %s(stale)%s", colorYellow, colorReset)
		}
		fmt.Printf("%s%s%s (@%s)%s\n", colorBold, state.User.Name, colorReset, state.User.Login, staleMark)
		if state.User.Bio != "" {
			fmt.Printf("  %s%s%s\n", colorGray, state.User.Bio, colorReset)
		}
		fmt.Printf("  repos: %d │ followers: %d\n\n", state.User.PublicRepos, state.User.Followers)
	} else {
		fmt.Printf("%sprofile unavailable%s\n\n", colorYellow, colorReset)
	}

	if state.Repos == nil {
		fmt.Printf("%srepositories unavailable%s\n", colorYellow, colorReset)
		return nil
	}

	staleMark := ""
	if state.ReposStale {
		staleMark = fmt.Sprintf(" %s(stale)%s", colorYellow, colorReset)
	}
	fmt.Printf("%s%d projects%s%s\n", colorBold, len(state.Repos), colorReset, staleMark)
	for _, r := range state.Repos {
		commits := "?"
		if r.CommitCount != nil {
			commits = fmt.Sprintf("%d", *r.CommitCount)
		}
		kws := colorGray + "no keywords" + colorReset
		if len(r.Keywords) > 0 {
			kws = strings.Join(r.Keywords, ", ")
		}
		fmt.Printf("  %s%s%s ★%d │ %s commits │ %s\n", colorCyan, r.Name, colorReset, r.Stars, commits, kws)
	}
	return nil
}
