package main

import "github.com/devexp/devexp-go-client/internal/cli"

func main() {
	cli.Execute()
}
