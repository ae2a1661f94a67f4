package main

import "github.com/tatianab/mystery-game/internal/cli"

func main() {
	cli.Execute()
}
