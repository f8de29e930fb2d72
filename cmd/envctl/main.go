package main

import "github.com/watchhub/envctl/pkg/cli/cmd"

func main() {
	cmd.Execute()
}
