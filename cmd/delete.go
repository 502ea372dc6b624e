package cmd

import (
	"github.com/spf13/cobra"
	"mapdispel.dev/pkg/mapdispel/internal/domain"
)

var deleteCheatsFlag bool
var deleteInteractiveFlag bool

// deleteCmd represents the delete command.
var deleteCmd = newDeleteCmd()

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete DIR [NAME...]",
		Short: "Delete maps from a folder",
		Long: `Delete the named maps from DIR. With --cheats every map the trust server
classifies as a cheat is selected as well; with --interactive the maps are
picked from a checklist in the terminal. The remaining maps are listed
afterwards.

NAME is the file name of a map as shown by scan, e.g. "(4)Maze.w3x".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Delete(cmd.Context(), domain.DeleteArgs{
				Dir:         parseDir(args),
				Names:       args[1:],
				Cheats:      deleteCheatsFlag,
				Interactive: deleteInteractiveFlag,
			})
		},
	}

	configureDeleteFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func configureDeleteFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&deleteCheatsFlag, cheatsFlagName, false, "verify first and delete every map classified as cheat")
	cmd.Flags().BoolVarP(&deleteInteractiveFlag, interactiveFlagName, "i", false, "pick the maps to delete in the terminal")
}
