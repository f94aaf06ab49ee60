package bgcode

import (
	"fmt"
	"strings"
)

// Markdown renders a hierarchical report of the decoded file: one section
// per block, including decompressed payloads as quoted text (spec.md
// §4.8). There is no correctness contract beyond every block
// contributing a section.
func (f *File) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# bgcode file\n\n")
	fmt.Fprintf(&b, "version: %d, checksum: %v\n", f.Header.Version, f.Header.ChecksumType == ChecksumCRC32)

	if f.FileMetadata != nil {
		fmt.Fprintf(&b, "\n## File metadata\n\n")
		renderKeyValues(&b, f.FileMetadata.Values)
	}

	fmt.Fprintf(&b, "\n## Printer metadata\n\n")
	renderKeyValues(&b, f.PrinterMetadata.Values)

	for i, t := range f.Thumbnails {
		fmt.Fprintf(&b, "\n## Thumbnail %d\n\n", i)
		fmt.Fprintf(&b, "format=%v %dx%d, %d bytes\n", t.Format, t.Width, t.Height, len(t.Data))
	}

	fmt.Fprintf(&b, "\n## Print metadata\n\n")
	renderKeyValues(&b, f.PrintMetadata.Values)

	fmt.Fprintf(&b, "\n## Slicer metadata\n\n")
	renderKeyValues(&b, f.Slicer.Values)

	for i, g := range f.GCode {
		fmt.Fprintf(&b, "\n## GCode block %d\n\n", i)
		fmt.Fprintf(&b, "encoding=%d\n\n```\n%s\n```\n", g.Encoding, g.Text)
	}

	return b.String()
}

func renderKeyValues(b *strings.Builder, kv KeyValues) {
	for _, e := range kv {
		fmt.Fprintf(b, "- %s = %s\n", e.Key, e.Value)
	}
}
