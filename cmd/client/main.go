package main

import "idcards/cmd/client/cmd"

func main() {
	cmd.Execute()
}
