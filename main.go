// Package main is the entry point for the MapDispel CLI.
package main

import "mapdispel.dev/pkg/mapdispel/cmd"

func main() {
	cmd.Execute()
}
