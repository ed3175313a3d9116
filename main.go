package main

import "github.com/brogergvhs/xkcdget/cmd"

func main() {
	cmd.Execute()
}
