// Command zdirectorctl is the collection-scheduling director's CLI
// entrypoint: run, simulate, and version subcommands built on cobra.
package main

import "github.com/ibs-source/zgc/director/cmd/zdirectorctl/cmd"

func main() {
	cmd.Execute()
}
