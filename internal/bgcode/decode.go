package bgcode

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"
)

// File is the structured result of decoding a bgcode container: the file
// header plus its six named sub-fields (spec.md §6), in wire order.
type File struct {
	Header FileHeader

	FileMetadata    *MetadataBlock
	PrinterMetadata MetadataBlock
	Thumbnails      []ThumbnailBlock
	PrintMetadata   MetadataBlock
	Slicer          MetadataBlock
	GCode           []GCodeBlock
}

// Decode parses a bgcode byte slice without verifying per-block CRC32
// trailers ("fast" entry point, spec.md §6).
func Decode(data []byte) (*File, error) {
	return decode(data, false)
}

// DecodeWithChecksum parses a bgcode byte slice and verifies every
// block's CRC32 trailer when the file header enables checksumming.
func DecodeWithChecksum(data []byte) (*File, error) {
	return decode(data, true)
}

func decode(data []byte, verify bool) (*File, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	header, err := parseFileHeader(r)
	if err != nil {
		return nil, err
	}
	readCRC := header.ChecksumType == ChecksumCRC32

	f := &File{Header: *header}

	if present, err := blockTypePresent(r, BlockFileMetadata); err != nil {
		return nil, err
	} else if present {
		mb, err := readMetadataBlock(r, BlockFileMetadata, readCRC, verify)
		if err != nil {
			return nil, err
		}
		f.FileMetadata = mb
	}

	printerMD, err := readMetadataBlock(r, BlockPrinterMetadata, readCRC, verify)
	if err != nil {
		return nil, err
	}
	f.PrinterMetadata = *printerMD

	for {
		present, err := blockTypePresent(r, BlockThumbnail)
		if err != nil {
			return nil, err
		}
		if !present {
			break
		}
		tb, err := readThumbnailBlock(r, readCRC, verify)
		if err != nil {
			return nil, err
		}
		f.Thumbnails = append(f.Thumbnails, *tb)
	}

	printMD, err := readMetadataBlock(r, BlockPrintMetadata, readCRC, verify)
	if err != nil {
		return nil, err
	}
	f.PrintMetadata = *printMD

	slicerMD, err := readMetadataBlock(r, BlockSlicerMetadata, readCRC, verify)
	if err != nil {
		return nil, err
	}
	f.Slicer = *slicerMD

	for {
		gb, err := readGCodeBlock(r, readCRC, verify)
		if err != nil {
			return nil, err
		}
		f.GCode = append(f.GCode, *gb)

		atEOF, err := isEOF(r)
		if err != nil {
			return nil, err
		}
		if atEOF {
			break
		}
	}
	if len(f.GCode) == 0 {
		return nil, newError(ShortInput, "file must contain at least one gcode block")
	}

	return f, nil
}

// blockTypePresent peeks the next block-type id without consuming it,
// reporting whether it matches want. Used for the optional file-metadata
// block and the zero-or-more thumbnail run.
func blockTypePresent(r *bufio.Reader, want BlockType) (bool, error) {
	peek, err := r.Peek(2)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return false, newError(ShortInput, "unexpected end of input")
	}
	if err != nil {
		return false, err
	}
	return BlockType(binary.LittleEndian.Uint16(peek)) == want, nil
}

// isEOF reports whether the reader is exhausted. Any bytes still available
// after a gcode block are read as a further gcode block, so trailing
// garbage fails there (BadBlockType or ShortInput).
func isEOF(r *bufio.Reader) (bool, error) {
	_, err := r.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// readBlockWithCRC reads a block header, its parameter bytes (already
// consumed by paramsFn as part of the tee'd region), and its payload,
// verifying the trailing CRC32 when requested. paramsFn must consume
// exactly the block-type's parameter prefix and return it opaquely;
// payloadFn receives the decompressed payload and must produce the typed
// block value.
func readBlockWithCRC[P any, B any](
	r *bufio.Reader,
	typ BlockType,
	readCRC, verify bool,
	paramsFn func(io.Reader) (P, error),
	payloadFn func(P, []byte) (B, error),
) (*B, error) {
	var tee bytes.Buffer
	teed := io.TeeReader(r, &tee)

	hdr, err := parseBlockHeader(teed, typ)
	if err != nil {
		return nil, err
	}
	params, err := paramsFn(teed)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, hdr.payloadSize())
	if _, err := io.ReadFull(teed, raw); err != nil {
		return nil, newError(ShortInput, "block payload truncated")
	}

	if readCRC {
		var crc uint32
		if err := binary.Read(r, binary.LittleEndian, &crc); err != nil {
			return nil, newError(ShortInput, "block CRC32 trailer truncated")
		}
		if verify {
			got := crc32.ChecksumIEEE(tee.Bytes())
			if got != crc {
				return nil, &Error{Code: ChecksumMismatch, Msg: typ.String() + " block checksum mismatch", Want: crc, Got: got}
			}
		}
	}

	decompressed, err := decompress(hdr.Compression, raw)
	if err != nil {
		return nil, err
	}
	block, err := payloadFn(params, decompressed)
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func readMetadataBlock(r *bufio.Reader, typ BlockType, readCRC, verify bool) (*MetadataBlock, error) {
	return readBlockWithCRC(r, typ, readCRC, verify,
		func(pr io.Reader) (struct{}, error) {
			return struct{}{}, readMetadataParams(pr)
		},
		func(_ struct{}, payload []byte) (MetadataBlock, error) {
			values, err := parseKeyValues(payload)
			if err != nil {
				return MetadataBlock{}, err
			}
			return MetadataBlock{Values: values}, nil
		},
	)
}

type thumbnailParams struct {
	format        ThumbnailFormat
	width, height uint16
}

func readThumbnailBlock(r *bufio.Reader, readCRC, verify bool) (*ThumbnailBlock, error) {
	return readBlockWithCRC(r, BlockThumbnail, readCRC, verify,
		func(pr io.Reader) (thumbnailParams, error) {
			format, width, height, err := readThumbnailParams(pr)
			return thumbnailParams{format, width, height}, err
		},
		func(p thumbnailParams, payload []byte) (ThumbnailBlock, error) {
			return ThumbnailBlock{Format: p.format, Width: p.width, Height: p.height, Data: payload}, nil
		},
	)
}

func readGCodeBlock(r *bufio.Reader, readCRC, verify bool) (*GCodeBlock, error) {
	return readBlockWithCRC(r, BlockGCode, readCRC, verify,
		readGCodeParams,
		func(enc GCodeEncoding, payload []byte) (GCodeBlock, error) {
			text, err := decodeGCodeText(enc, payload)
			if err != nil {
				return GCodeBlock{}, err
			}
			return GCodeBlock{Encoding: enc, Text: text}, nil
		},
	)
}
