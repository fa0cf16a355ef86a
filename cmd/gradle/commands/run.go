package commands

import (
	"github.com/spf13/cobra"
	"github.com/vladsoroka/gradle/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run the named tasks and their dependencies, or all tasks",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			watch, _ := cmd.Flags().GetBool("watch")
			parallelism, _ := cmd.Flags().GetInt("parallelism")
			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Force:       force,
				Watch:       watch,
				Parallelism: parallelism,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Execute tasks even when their outputs are up to date")
	cmd.Flags().BoolP("watch", "w", false, "Keep running and rebuild when workspace files change")
	cmd.Flags().IntP("parallelism", "p", 0, "Maximum concurrent tasks (0 means one per CPU)")
	return cmd
}
