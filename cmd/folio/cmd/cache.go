package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the local cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache contents by kind",
	RunE:  runCacheStatus,
}

var cacheEvictCmd = &cobra.Command{
	Use:   "evict",
	Short: "Remove expired analysis results",
	RunE:  runCacheEvict,
}

var cacheWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cached data",
	RunE:  runCacheWipe,
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheEvictCmd)
	cacheCmd.AddCommand(cacheWipeCmd)
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	keys, err := a.Store.Keys("")
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}

	kinds := map[string]int{}
	for _, k := range keys {
		switch {
		case strings.HasPrefix(k, "readme_keywords_"):
			kinds["analysis results"]++
		case strings.HasPrefix(k, "github_readme_"):
			kinds["readmes"]++
		case strings.HasPrefix(k, "github_commits_"):
			kinds["commit counts"]++
		case strings.HasPrefix(k, "github_repos_"):
			kinds["repo listings"]++
		case strings.HasPrefix(k, "github_user_"):
			kinds["profiles"]++
		default:
			kinds["other"]++
		}
	}

	fmt.Printf("%scache:%s %s\n", colorBold, colorReset, a.Config.Cache.Path)
	fmt.Printf("%d entries\n", len(keys))
	for _, kind := range []string{"profiles", "repo listings", "readmes", "commit counts", "analysis results", "other"} {
		if n := kinds[kind]; n > 0 {
			fmt.Printf("  %-18s %d\n", kind, n)
		}
	}
	return nil
}

func runCacheEvict(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Results.EvictExpired()
	if err != nil {
		return fmt.Errorf("evict expired results: %w", err)
	}
	fmt.Printf("%sevicted %d expired analysis results%s\n", colorGreen, n, colorReset)
	return nil
}

func runCacheWipe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	keys, err := a.Store.Keys("")
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}
	for _, k := range keys {
		if err := a.Store.Delete(k); err != nil {
			return fmt.Errorf("delete %q: %w", k, err)
		}
	}
	fmt.Printf("%swiped %d cache entries%s\n", colorGreen, len(keys), colorReset)
	return nil
}
