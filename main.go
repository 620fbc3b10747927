package main

import "github.com/SameerRanjanJha/quick-eda-app/cmd"

func main() {
	cmd.Execute()
}
