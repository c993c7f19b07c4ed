package main

import "github.com/perarneng/gmailday/cmd"

func main() {
	cmd.Execute()
}
