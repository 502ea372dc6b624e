package cmd

import (
	"github.com/spf13/cobra"
	"mapdispel.dev/pkg/mapdispel/internal/domain"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Hash the maps in a folder",
		Long: `Hash every map directly inside DIR and list the checksums without
contacting the trust server.

` + dirArgHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := currentWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Scan(cmd.Context(), domain.ScanArgs{Dir: parseDir(args)})
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
