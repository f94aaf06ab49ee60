// Package heatshrink adapts github.com/currantlabs/goheatshrink to the
// bgcode decoder's single supported configuration: window=12, lookahead=4
// (compression id 3). Window=11 (id 2) is a documented gap upstream and is
// deliberately never constructed here; see internal/bgcode's dispatch.
package heatshrink

import (
	"bytes"
	"io"

	goheatshrink "github.com/currantlabs/goheatshrink"
)

// DecompressWindow12 inflates a Heatshrink window=12/lookahead=4 stream.
func DecompressWindow12(body []byte) ([]byte, error) {
	r := goheatshrink.NewReader(bytes.NewReader(body), goheatshrink.Window(12), goheatshrink.Lookahead(4))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}
