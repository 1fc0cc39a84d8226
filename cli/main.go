package main

import "github.com/yvchan/streamsx.topology/cli/cmd"

func main() {
	cmd.Execute()
}
