package main

import "github.com/hasanfardous/startup-wp/cmd"

func main() {
	cmd.Execute()
}
