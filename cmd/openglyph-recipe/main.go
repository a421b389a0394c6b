package main

import "github.com/openeaw/openglyph-recipe/cmd/openglyph-recipe/cmd"

func main() {
	cmd.Execute()
}
