package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/nina/filter"
	"github.com/s0up4200/nina/nina"
)

// postsCmd represents the posts command group
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List and inspect posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts matching the filter criteria",
	Args:  cobra.NoArgs,
	RunE:  runPostsList,
}

var postsGetCmd = &cobra.Command{
	Use:   "get <publicKey>",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsGet,
}

func init() {
	addListFlags(postsListCmd, true)

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsGetCmd)
}

func runPostsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	page, err := client.ListPosts(ctx, limit)
	if err != nil {
		return err
	}

	posts, err := applyFilter(ctx, page.Items, filter.PostEnv)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), posts, func() string {
		return formatter.FormatPosts(posts, page.Total, formatOptions())
	}, func() tableView {
		return postTable(posts)
	})
}

func runPostsGet(cmd *cobra.Command, args []string) error {
	post, err := client.GetPost(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), post, func() string {
		out := formatter.FormatPosts([]nina.Post{*post}, 1, nina.FormatOptions{ShowDetails: true})
		return out + post.Body + "\n"
	})
}
