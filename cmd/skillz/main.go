// skillz browses a skill catalog and generates installer scripts.
package main

import "github.com/antopolskiy/skillz/cmd"

func main() {
	cmd.Execute()
}
