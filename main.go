package main

import "github.com/KaramelBytes/microlab-cli/cmd"

func main() {
	cmd.Execute()
}
