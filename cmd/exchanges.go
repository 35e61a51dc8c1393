package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/nina/filter"
	"github.com/s0up4200/nina/nina"
)

var openOnly bool

// exchangesCmd represents the exchanges command group
var exchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "List and inspect exchanges",
}

var exchangesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exchanges matching the filter criteria",
	Args:  cobra.NoArgs,
	RunE:  runExchangesList,
}

var exchangesGetCmd = &cobra.Command{
	Use:   "get <publicKey>",
	Short: "Show an exchange",
	Args:  cobra.ExactArgs(1),
	RunE:  runExchangesGet,
}

func init() {
	addListFlags(exchangesListCmd, true)
	exchangesListCmd.Flags().BoolVar(&openOnly, "open", false, "only show exchanges that can still be completed")

	exchangesCmd.AddCommand(exchangesListCmd)
	exchangesCmd.AddCommand(exchangesGetCmd)
}

func runExchangesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	page, err := client.ListExchanges(ctx, limit)
	if err != nil {
		return err
	}

	exchanges, err := applyFilter(ctx, page.Items, filter.ExchangeEnv)
	if err != nil {
		return err
	}

	if openOnly {
		open := exchanges[:0:0]
		for _, e := range exchanges {
			if e.IsOpen() {
				open = append(open, e)
			}
		}
		exchanges = open
	}

	return renderList(cmd.OutOrStdout(), exchanges, func() string {
		return formatter.FormatExchanges(exchanges, page.Total, formatOptions())
	}, func() tableView {
		return exchangeTable(exchanges)
	})
}

func runExchangesGet(cmd *cobra.Command, args []string) error {
	exchange, err := client.GetExchange(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), exchange, func() string {
		return formatter.FormatExchanges([]nina.Exchange{*exchange}, 1, nina.FormatOptions{ShowDetails: true})
	}, func() tableView {
		return exchangeTable([]nina.Exchange{*exchange})
	})
}
