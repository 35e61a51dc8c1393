package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nina/filter"
	"github.com/s0up4200/nina/nina"
)

// releasesCmd represents the releases command group
var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List and inspect releases",
}

var releasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List releases matching the filter criteria",
	Args:  cobra.NoArgs,
	RunE:  runReleasesList,
}

var releasesGetCmd = &cobra.Command{
	Use:   "get <publicKey>...",
	Short: "Show one or more releases",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReleasesGet,
}

var releasesCollectorsCmd = &cobra.Command{
	Use:   "collectors <publicKey>",
	Short: "List the accounts that collected a release",
	Args:  cobra.ExactArgs(1),
	RunE:  runReleasesCollectors,
}

var releasesHubsCmd = &cobra.Command{
	Use:   "hubs <publicKey>",
	Short: "List the hubs a release appears in",
	Args:  cobra.ExactArgs(1),
	RunE:  runReleasesHubs,
}

var releasesExchangesCmd = &cobra.Command{
	Use:   "exchanges <publicKey>",
	Short: "List the exchanges for a release",
	Args:  cobra.ExactArgs(1),
	RunE:  runReleasesExchanges,
}

func init() {
	addListFlags(releasesListCmd, true)

	releasesCmd.AddCommand(releasesListCmd)
	releasesCmd.AddCommand(releasesGetCmd)
	releasesCmd.AddCommand(releasesCollectorsCmd)
	releasesCmd.AddCommand(releasesHubsCmd)
	releasesCmd.AddCommand(releasesExchangesCmd)
}

func runReleasesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	page, err := client.ListReleases(ctx, limit)
	if err != nil {
		return err
	}

	releases, err := applyFilter(ctx, page.Items, filter.ReleaseEnv)
	if err != nil {
		return err
	}

	logger.Info().
		Int("fetched", len(page.Items)).
		Int("matched", len(releases)).
		Int("total", page.Total).
		Msg("Listed releases")

	return renderList(cmd.OutOrStdout(), releases, func() string {
		return formatter.FormatReleases(releases, page.Total, formatOptions())
	}, func() tableView {
		return releaseTable(releases)
	})
}

func runReleasesGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 1 {
		release, err := client.GetRelease(ctx, args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), release, func() string {
			return formatter.FormatRelease(release)
		})
	}

	result := client.BatchGetReleases(ctx, args)
	for _, failed := range result.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", failed)
	}

	if err := render(cmd.OutOrStdout(), result.Items, func() string {
		return formatter.FormatReleases(result.Items, result.Requested, nina.FormatOptions{ShowDetails: true})
	}); err != nil {
		return err
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("failed to fetch %d of %d releases", len(result.Failed), result.Requested)
	}
	return nil
}

func runReleasesCollectors(cmd *cobra.Command, args []string) error {
	collectors, err := client.GetReleaseCollectors(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	keys := refKeys(collectors)
	return renderList(cmd.OutOrStdout(), collectors, func() string {
		return formatter.FormatKeys("Collector", keys, len(keys))
	}, func() tableView {
		return keyTable("Collector", keys)
	})
}

func runReleasesHubs(cmd *cobra.Command, args []string) error {
	hubs, err := client.GetReleaseHubs(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), hubs, func() string {
		return formatter.FormatHubs(hubs, len(hubs), formatOptions())
	}, func() tableView {
		return hubTable(hubs)
	})
}

func runReleasesExchanges(cmd *cobra.Command, args []string) error {
	exchanges, err := client.GetReleaseExchanges(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), exchanges, func() string {
		return formatter.FormatExchanges(exchanges, len(exchanges), formatOptions())
	}, func() tableView {
		return exchangeTable(exchanges)
	})
}
