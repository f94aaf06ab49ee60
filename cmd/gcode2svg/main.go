// Command gcode2svg projects a G-code program (plain text or a bgcode
// container) into the single-<path> SVG document described by spec.md §6.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/printforge/toolpath/internal/bgcode"
	"github.com/printforge/toolpath/internal/gcode"
	"github.com/printforge/toolpath/internal/motion"
	"github.com/printforge/toolpath/internal/svgwriter"
)

func main() {
	var (
		output    = flag.String("o", "", "output path (default: stdout)")
		isBgcode  = flag.Bool("bgcode", false, "treat input as a binary .bgcode container")
		verifyCRC = flag.Bool("verify", false, "verify CRC32 when reading a bgcode container")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: gcode2svg [flags] <input>")
	}

	text, err := readGCodeText(flag.Arg(0), *isBgcode, *verifyCRC)
	if err != nil {
		log.Fatalf("gcode2svg: %v", err)
	}

	commands, err := gcode.ParseProgram(text)
	if err != nil {
		log.Fatalf("gcode2svg: tokenising input: %v", err)
	}

	ops, bbox, err := motion.Project(commands)
	if err != nil {
		log.Fatalf("gcode2svg: projecting path: %v", err)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("gcode2svg: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := svgwriter.Write(out, ops, bbox); err != nil {
		log.Fatalf("gcode2svg: writing SVG: %v", err)
	}
}

func readGCodeText(path string, isBgcode, verifyCRC bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !isBgcode {
		return string(data), nil
	}

	var file *bgcode.File
	if verifyCRC {
		file, err = bgcode.DecodeWithChecksum(data)
	} else {
		file, err = bgcode.Decode(data)
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range file.GCode {
		b.WriteString(block.Text)
	}
	return b.String(), nil
}
