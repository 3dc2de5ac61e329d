package main

import "github.com/dbsmedya/swimrecords/cmd/swimrecords/cmd"

func main() {
	cmd.Execute()
}
