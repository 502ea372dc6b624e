package cmd

import (
	"github.com/spf13/cobra"
	"mapdispel.dev/pkg/mapdispel/internal/domain"
)

// verifyCmd represents the verify command.
var verifyCmd = newVerifyCmd()

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [DIR]",
		Short: "Classify the maps in a folder",
		Long: `Hash every map directly inside DIR, send the checksums to the trust
server in one request and show whether each map is official, unknown or a
cheat.

` + dirArgHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Verify(cmd.Context(), domain.VerifyArgs{Dir: parseDir(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
