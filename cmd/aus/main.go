// Command aus assembles x86 mnemonic assembly text into raw machine code.
package main

import "github.com/keurnel/aus/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
