package main

import "github.com/sumwatshade/surfgrid/cmd"

func main() {
	cmd.Execute()
}
