package main

import "github.com/Johnny9802/sigma-spl-bridge/cmd"

func main() {
	cmd.Execute()
}
