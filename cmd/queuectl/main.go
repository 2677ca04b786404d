package main

import "github.com/synqueue/queuectl/cmd/queuectl/cli"

func main() {
	cli.Execute()
}
