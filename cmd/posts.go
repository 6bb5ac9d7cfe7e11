package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/consultorvarela/portfolio/internal/blog"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List published posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := blog.Default()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSLUG\tREAD\tTAGS\tTITLE")
		for _, p := range posts.GetAllPosts() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.DisplayDate(), p.ID, p.ReadTime, strings.Join(p.Tags, ","), p.Title)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
}
