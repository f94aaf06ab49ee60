package bgcode

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"strings"

	"github.com/printforge/toolpath/internal/bgcode/heatshrink"
	"github.com/printforge/toolpath/internal/bgcode/meatpack"
)

// KeyValue is one entry of a metadata block's key/value table.
type KeyValue struct{ Key, Value string }

// KeyValues is an ordered list of KeyValue pairs, as produced by the
// text-based metadata encoding (the only one the format accepts: encoding
// id 0, "none", meaning plain `key = value` lines).
type KeyValues []KeyValue

// Get returns the value of the first entry matching key.
func (kv KeyValues) Get(key string) (string, bool) {
	for _, e := range kv {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func parseKeyValues(body []byte) (KeyValues, error) {
	var out KeyValues
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, newError(DecompressionFailure, "malformed metadata key-value line")
		}
		out = append(out, KeyValue{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
	}
	return out, nil
}

// GCodeEncoding is the G-code block's re-encoding parameter.
type GCodeEncoding uint16

const (
	GCodeEncodingNone             GCodeEncoding = 0
	GCodeEncodingMeatPack         GCodeEncoding = 1
	GCodeEncodingMeatPackComments GCodeEncoding = 2
)

// ThumbnailFormat identifies the image codec of a thumbnail payload. The
// core treats the payload as opaque bytes regardless of format.
type ThumbnailFormat uint16

const (
	ThumbnailPNG ThumbnailFormat = 0
	ThumbnailJPG ThumbnailFormat = 1
	ThumbnailQOI ThumbnailFormat = 2
)

// MetadataBlock is the shared shape of file/printer/print/slicer metadata
// blocks: a 2-byte encoding parameter (only 0 accepted) plus a key-value
// table.
type MetadataBlock struct {
	Values KeyValues
}

// ThumbnailBlock is one embedded preview image.
type ThumbnailBlock struct {
	Format        ThumbnailFormat
	Width, Height uint16
	Data          []byte
}

// GCodeBlock is one chunk of decoded G-code text.
type GCodeBlock struct {
	Encoding GCodeEncoding
	Text     string
}

func readMetadataParams(r io.Reader) error {
	var encoding uint16
	if err := binary.Read(r, binary.LittleEndian, &encoding); err != nil {
		return newError(ShortInput, "metadata block parameter prefix truncated")
	}
	if encoding != 0 {
		return newError(BadEncoding, "metadata blocks accept only encoding 0")
	}
	return nil
}

func readThumbnailParams(r io.Reader) (ThumbnailFormat, uint16, uint16, error) {
	var raw struct {
		Format uint16
		Width  uint16
		Height uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return 0, 0, 0, newError(ShortInput, "thumbnail parameter prefix truncated")
	}
	return ThumbnailFormat(raw.Format), raw.Width, raw.Height, nil
}

func readGCodeParams(r io.Reader) (GCodeEncoding, error) {
	var encoding uint16
	if err := binary.Read(r, binary.LittleEndian, &encoding); err != nil {
		return 0, newError(ShortInput, "gcode block parameter prefix truncated")
	}
	enc := GCodeEncoding(encoding)
	if enc != GCodeEncodingNone && enc != GCodeEncodingMeatPack && enc != GCodeEncodingMeatPackComments {
		return 0, newError(BadEncoding, "gcode encoding must be 0, 1 or 2")
	}
	return enc, nil
}

// decompress turns a raw payload into plain bytes per the block header's
// compression id (spec.md §3/§4.7). Heatshrink-11 is a deliberate gap.
func decompress(comp Compression, raw []byte) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return raw, nil
	case CompressionDeflate:
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, newError(DecompressionFailure, "zlib: "+err.Error())
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, newError(DecompressionFailure, "zlib: "+err.Error())
		}
		return out, nil
	case CompressionHeatshrink11:
		return nil, newError(UnimplementedCompression, "heatshrink window=11 is not supported")
	case CompressionHeatshrink12:
		out, err := heatshrink.DecompressWindow12(raw)
		if err != nil {
			return nil, newError(DecompressionFailure, "heatshrink: "+err.Error())
		}
		return out, nil
	default:
		return nil, newError(BadCompression, "unrecognised compression id")
	}
}

// decodeGCodeText re-decodes already-decompressed G-code bytes per the
// encoding parameter. Plain MeatPack (no comment preservation) is a
// deliberate gap.
func decodeGCodeText(enc GCodeEncoding, decompressed []byte) (string, error) {
	switch enc {
	case GCodeEncodingNone:
		return string(decompressed), nil
	case GCodeEncodingMeatPack:
		return "", newError(UnimplementedEncoding, "plain MeatPack (no comment preservation) is not supported")
	case GCodeEncodingMeatPackComments:
		u := meatpack.NewUnpacker()
		var out strings.Builder
		for _, b := range decompressed {
			result, line, err := u.Unpack(b)
			if err != nil {
				return "", newError(DecompressionFailure, "meatpack: "+err.Error())
			}
			if result == meatpack.Line {
				out.Write(line)
				out.WriteByte('\n')
			}
		}
		if rest := u.Close(); rest != nil {
			out.Write(rest)
			out.WriteByte('\n')
		}
		return out.String(), nil
	default:
		return "", newError(BadEncoding, "unrecognised gcode encoding")
	}
}
