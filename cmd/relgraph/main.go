package main

import "github.com/syssam/relgraph/cmd/relgraph/cmd"

func main() {
	cmd.Execute()
}
