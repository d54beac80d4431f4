package main

import "github.com/mj1618/sikuli-cli/cmd"

func main() {
	cmd.Execute()
}
