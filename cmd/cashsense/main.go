// Package main provides the entry point for the cashsense CLI application.
package main

import (
	"fjacquet/cashsense/cmd/categories"
	"fjacquet/cashsense/cmd/demo"
	"fjacquet/cashsense/cmd/generate"
	"fjacquet/cashsense/cmd/root"
	"fjacquet/cashsense/cmd/validate"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(generate.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(demo.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Fatal(err)
	}
}
