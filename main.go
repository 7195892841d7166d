package main

import "triprecord/cmd"

func main() {
	cmd.Execute()
}
