package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/nina/filter"
	"github.com/s0up4200/nina/nina"
)

var expandHub bool

// hubsCmd represents the hubs command group
var hubsCmd = &cobra.Command{
	Use:   "hubs",
	Short: "List and inspect hubs",
}

var hubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hubs matching the filter criteria",
	Args:  cobra.NoArgs,
	RunE:  runHubsList,
}

var hubsGetCmd = &cobra.Command{
	Use:   "get <publicKeyOrHandle>",
	Short: "Show a hub",
	Args:  cobra.ExactArgs(1),
	RunE:  runHubsGet,
}

var hubsCollaboratorsCmd = &cobra.Command{
	Use:   "collaborators <publicKeyOrHandle>",
	Short: "List the collaborators of a hub",
	Args:  cobra.ExactArgs(1),
	RunE:  runHubsCollaborators,
}

var hubsReleasesCmd = &cobra.Command{
	Use:   "releases <publicKeyOrHandle>",
	Short: "List the releases in a hub",
	Args:  cobra.ExactArgs(1),
	RunE:  runHubsReleases,
}

func init() {
	addListFlags(hubsListCmd, true)
	hubsGetCmd.Flags().BoolVarP(&expandHub, "expand", "e", false, "also fetch collaborators and releases")
	hubsReleasesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	hubsReleasesCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	hubsCmd.AddCommand(hubsListCmd)
	hubsCmd.AddCommand(hubsGetCmd)
	hubsCmd.AddCommand(hubsCollaboratorsCmd)
	hubsCmd.AddCommand(hubsReleasesCmd)
}

func runHubsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	page, err := client.ListHubs(ctx, limit)
	if err != nil {
		return err
	}

	hubs, err := applyFilter(ctx, page.Items, filter.HubEnv)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), hubs, func() string {
		return formatter.FormatHubs(hubs, page.Total, formatOptions())
	}, func() tableView {
		return hubTable(hubs)
	})
}

func runHubsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		data *nina.HubData
		err  error
	)
	if expandHub {
		data, err = client.ExpandHub(ctx, args[0])
	} else {
		data, err = client.GetHub(ctx, args[0])
	}
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), data, func() string {
		return formatter.FormatHubData(data, formatOptions())
	})
}

func runHubsCollaborators(cmd *cobra.Command, args []string) error {
	result, err := client.GetHubCollaborators(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), result, func() string {
		return formatter.FormatCollaborators(result.Collaborators)
	})
}

func runHubsReleases(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	result, err := client.GetHubReleases(ctx, args[0])
	if err != nil {
		return err
	}

	releases, err := applyFilter(ctx, result.Releases, filter.ReleaseEnv)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), releases, func() string {
		return formatter.FormatReleases(releases, len(result.Releases), formatOptions())
	}, func() tableView {
		return releaseTable(releases)
	})
}
