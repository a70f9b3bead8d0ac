package main

import "github.com/KaramelBytes/askloom-cli/cmd"

func main() {
	cmd.Execute()
}
