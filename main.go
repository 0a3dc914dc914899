// Package main is the entry point for the buildsync CLI.
package main

import "buildsync.dev/pkg/buildsync/cmd"

func main() {
	cmd.Execute()
}
