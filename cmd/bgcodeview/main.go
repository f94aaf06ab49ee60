// Command bgcodeview decodes a .bgcode container and prints the
// markdown report described by spec.md §4.8.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/printforge/toolpath/internal/bgcode"
)

func main() {
	verifyCRC := flag.Bool("verify", false, "verify CRC32 for every block")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: bgcodeview [flags] <input.bgcode>")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("bgcodeview: %v", err)
	}

	var file *bgcode.File
	if *verifyCRC {
		file, err = bgcode.DecodeWithChecksum(data)
	} else {
		file, err = bgcode.Decode(data)
	}
	if err != nil {
		log.Fatalf("bgcodeview: %v", err)
	}

	os.Stdout.WriteString(file.Markdown())
}
