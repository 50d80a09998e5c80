package main

import "netbox-importer/cmd"

func main() {
	cmd.Execute()
}
