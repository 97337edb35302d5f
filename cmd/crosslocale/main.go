package main

import "crosslocale/internal/cli"

func main() {
	cli.Execute()
}
