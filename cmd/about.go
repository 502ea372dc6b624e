package cmd

import (
	"github.com/spf13/cobra"
)

const aboutText = `Warcraft III is over 20 years old. Despite its age, custom map hacking
remains a problem the community faces.

MapDispel is a small step in addressing it by giving a way to tell which maps
are official. Maps from official creators are collected into a trust database
that is updated weekly. MapDispel compares the maps in the folder you select,
and only that folder, against it.

The only information sent to the server is the map checksums.`

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Explain what MapDispel does",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(aboutText)
		},
	}
}

// aboutCmd represents the about command.
var aboutCmd = newAboutCmd()

func init() {
	rootCmd.AddCommand(aboutCmd)
}
