package main

import "sysafari.com/customs/costsim/cmd"

func main() {
	cmd.Execute()
}
