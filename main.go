package main

import "github.com/twiced-technology-gmbh/dateentry/cmd"

func main() {
	cmd.Execute()
}
