// Command packer exports and inspects packable product documents.
package main

import "github.com/mesh-intelligence/packer/internal/cli"

func main() {
	cli.Execute()
}
