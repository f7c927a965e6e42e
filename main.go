package main

import "github.com/Tiliavir/clockhand/cmd"

func main() {
	cmd.Execute()
}
