package main

import "github.com/rommelDB/PSyclone/cmd"

func main() {
	cmd.Execute()
}
