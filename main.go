package main

import "github.com/fakeyudi/glance/cmd"

func main() {
	cmd.Execute()
}
