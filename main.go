package main

import "github.com/brogergvhs/biblioscrape/cmd"

func main() {
	cmd.Execute()
}
