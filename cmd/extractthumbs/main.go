// Command extractthumbs pulls the embedded thumbnail payloads out of a
// .bgcode container and writes each to its own file. Payload bytes are
// opaque to the core (spec.md §1): the image codec is named only by a
// format tag, never decoded.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/printforge/toolpath/internal/bgcode"
)

func main() {
	outDir := flag.String("outdir", ".", "directory to write thumbnail files into")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: extractthumbs [flags] <input.bgcode>")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("extractthumbs: %v", err)
	}
	file, err := bgcode.Decode(data)
	if err != nil {
		log.Fatalf("extractthumbs: %v", err)
	}

	if len(file.Thumbnails) == 0 {
		log.Printf("extractthumbs: no thumbnails embedded")
		return
	}

	for i, t := range file.Thumbnails {
		name := fmt.Sprintf("thumb_%d_%dx%d.%s", i, t.Width, t.Height, extensionFor(t.Format))
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, t.Data, 0o644); err != nil {
			log.Fatalf("extractthumbs: writing %s: %v", path, err)
		}
		log.Printf("wrote %s (%d bytes)", path, len(t.Data))
	}
}

func extensionFor(f bgcode.ThumbnailFormat) string {
	switch f {
	case bgcode.ThumbnailPNG:
		return "png"
	case bgcode.ThumbnailJPG:
		return "jpg"
	case bgcode.ThumbnailQOI:
		return "qoi"
	default:
		return "bin"
	}
}
