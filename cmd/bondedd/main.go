package main

import "github.com/LeJamon/goBondedMarkets/internal/cli"

func main() {
	cli.Execute()
}
