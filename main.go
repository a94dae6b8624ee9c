package main

import "github.com/boardhub/board-api/cmd"

func main() {
	cmd.Execute()
}
