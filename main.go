package main

import "github.com/KaramelBytes/weekloom-cli/cmd"

func main() {
	cmd.Execute()
}
