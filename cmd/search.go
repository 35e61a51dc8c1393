package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resolveSearch bool

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search accounts, artists, releases and hubs",
	Long: `Search the Nina API. By default only matching public keys are shown;
--resolve fetches the matching releases and hubs in full.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&resolveSearch, "resolve", "r", false, "fetch matching releases and hubs")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	logger.Info().Str("query", query).Msg("Searching Nina")

	result, err := client.Search(ctx, query)
	if err != nil {
		return err
	}

	if !resolveSearch {
		return render(cmd.OutOrStdout(), result, func() string {
			return formatter.FormatSearch(result)
		})
	}

	resolved, err := client.ResolveSearch(ctx, result)
	if err != nil {
		return err
	}
	for _, failed := range resolved.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", failed)
	}

	return render(cmd.OutOrStdout(), resolved, func() string {
		var sb strings.Builder
		if len(resolved.Accounts) > 0 {
			sb.WriteString(formatter.FormatKeys("Account", resolved.Accounts, len(resolved.Accounts)))
		}
		if len(resolved.Artists) > 0 {
			sb.WriteString(formatter.FormatKeys("Artist", resolved.Artists, len(resolved.Artists)))
		}
		if len(resolved.Releases) > 0 {
			sb.WriteString(formatter.FormatReleases(resolved.Releases, len(result.Releases), formatOptions()))
		}
		if len(resolved.Hubs) > 0 {
			sb.WriteString(formatter.FormatHubs(resolved.Hubs, len(result.Hubs), formatOptions()))
		}
		if sb.Len() == 0 {
			return "No results found"
		}
		return sb.String()
	})
}
