package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/nina/filter"
)

// accountsCmd represents the accounts command group
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List and inspect accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List account public keys",
	Args:  cobra.NoArgs,
	RunE:  runAccountsList,
}

var accountsGetCmd = &cobra.Command{
	Use:   "get <publicKey>",
	Short: "Show an account summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsGet,
}

var accountsCollectedCmd = &cobra.Command{
	Use:   "collected <publicKey>",
	Short: "List the releases an account collected",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsCollected,
}

var accountsPublishedCmd = &cobra.Command{
	Use:   "published <publicKey>",
	Short: "List the releases an account published",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsPublished,
}

var accountsExchangesCmd = &cobra.Command{
	Use:   "exchanges <publicKey>",
	Short: "List the exchanges of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsExchanges,
}

var accountsHubsCmd = &cobra.Command{
	Use:   "hubs <publicKey>",
	Short: "List the hubs an account belongs to",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsHubs,
}

var accountsPostsCmd = &cobra.Command{
	Use:   "posts <publicKey>",
	Short: "List the posts of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsPosts,
}

func init() {
	addListFlags(accountsListCmd, false)
	for _, c := range []*cobra.Command{accountsCollectedCmd, accountsPublishedCmd} {
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
		c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	}

	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsGetCmd)
	accountsCmd.AddCommand(accountsCollectedCmd)
	accountsCmd.AddCommand(accountsPublishedCmd)
	accountsCmd.AddCommand(accountsExchangesCmd)
	accountsCmd.AddCommand(accountsHubsCmd)
	accountsCmd.AddCommand(accountsPostsCmd)
}

func runAccountsList(cmd *cobra.Command, args []string) error {
	page, err := client.ListAccounts(cmd.Context(), limit)
	if err != nil {
		return err
	}

	keys := refKeys(page.Items)
	return renderList(cmd.OutOrStdout(), page, func() string {
		return formatter.FormatKeys("Account", keys, page.Total)
	}, func() tableView {
		return keyTable("Account", keys)
	})
}

func runAccountsGet(cmd *cobra.Command, args []string) error {
	account, err := client.GetAccount(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), account, func() string {
		return formatter.FormatAccount(account)
	})
}

func runAccountsCollected(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	collected, err := client.GetAccountCollected(ctx, args[0])
	if err != nil {
		return err
	}

	releases, err := applyFilter(ctx, collected, filter.ReleaseEnv)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), releases, func() string {
		return formatter.FormatReleases(releases, len(collected), formatOptions())
	}, func() tableView {
		return releaseTable(releases)
	})
}

func runAccountsPublished(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	published, err := client.GetAccountPublished(ctx, args[0])
	if err != nil {
		return err
	}

	releases, err := applyFilter(ctx, published, filter.ReleaseEnv)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), releases, func() string {
		return formatter.FormatReleases(releases, len(published), formatOptions())
	}, func() tableView {
		return releaseTable(releases)
	})
}

func runAccountsExchanges(cmd *cobra.Command, args []string) error {
	exchanges, err := client.GetAccountExchanges(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), exchanges, func() string {
		return formatter.FormatExchanges(exchanges, len(exchanges), formatOptions())
	}, func() tableView {
		return exchangeTable(exchanges)
	})
}

func runAccountsHubs(cmd *cobra.Command, args []string) error {
	hubs, err := client.GetAccountHubs(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), hubs, func() string {
		return formatter.FormatHubs(hubs, len(hubs), formatOptions())
	}, func() tableView {
		return hubTable(hubs)
	})
}

func runAccountsPosts(cmd *cobra.Command, args []string) error {
	posts, err := client.GetAccountPosts(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), posts, func() string {
		return formatter.FormatPosts(posts, len(posts), formatOptions())
	}, func() tableView {
		return postTable(posts)
	})
}
