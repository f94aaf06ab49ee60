package bgcode

import (
	"encoding/binary"
	"io"
)

// BlockType identifies one of the six block kinds and its position in the
// strict top-level sequence (spec.md §3/§4.7).
type BlockType uint16

const (
	BlockFileMetadata    BlockType = 0
	BlockGCode           BlockType = 1
	BlockSlicerMetadata  BlockType = 2
	BlockPrinterMetadata BlockType = 3
	BlockPrintMetadata   BlockType = 4
	BlockThumbnail       BlockType = 5
)

func (t BlockType) String() string {
	switch t {
	case BlockFileMetadata:
		return "file-metadata"
	case BlockGCode:
		return "gcode"
	case BlockSlicerMetadata:
		return "slicer-metadata"
	case BlockPrinterMetadata:
		return "printer-metadata"
	case BlockPrintMetadata:
		return "print-metadata"
	case BlockThumbnail:
		return "thumbnail"
	default:
		return "unknown-block-type"
	}
}

// Compression is the block-header compression selector.
type Compression uint16

const (
	CompressionNone        Compression = 0
	CompressionDeflate     Compression = 1
	CompressionHeatshrink11 Compression = 2
	CompressionHeatshrink12 Compression = 3
)

func (c Compression) valid() bool {
	return c >= CompressionNone && c <= CompressionHeatshrink12
}

// blockHeader is the 8- or 12-byte fixed prefix shared by every block.
type blockHeader struct {
	Type             BlockType
	Compression      Compression
	UncompressedSize uint32
	CompressedSize   uint32
}

// payloadSize returns the number of bytes the decoder must read for the
// block's payload, per the compression id (spec.md §3).
func (h *blockHeader) payloadSize() uint32 {
	if h.Compression == CompressionNone {
		return h.UncompressedSize
	}
	return h.CompressedSize
}

func parseBlockHeader(r io.Reader, expect BlockType) (*blockHeader, error) {
	var basic struct {
		Type             uint16
		Compression      uint16
		UncompressedSize uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &basic); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, newError(ShortInput, "block header truncated")
		}
		return nil, err
	}
	got := BlockType(basic.Type)
	if got != expect {
		return nil, newError(BadBlockType, "expected block type "+expect.String()+", got "+got.String())
	}
	comp := Compression(basic.Compression)
	if !comp.valid() {
		return nil, newError(BadCompression, "compression id out of range")
	}

	h := &blockHeader{Type: got, Compression: comp, UncompressedSize: basic.UncompressedSize}
	if comp == CompressionNone {
		return h, nil
	}
	if err := binary.Read(r, binary.LittleEndian, &h.CompressedSize); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, newError(ShortInput, "block header truncated")
		}
		return nil, err
	}
	return h, nil
}

// sizeInBytes is the on-wire size of the header itself: 8 bytes when
// uncompressed, 12 when a compressed size field is present.
func (h *blockHeader) sizeInBytes() int {
	if h.Compression == CompressionNone {
		return 8
	}
	return 12
}
