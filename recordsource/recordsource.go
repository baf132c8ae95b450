// recordsource.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package recordsource implements the external collaborator that feeds
// record.Input values into stage A: a decoded-record stream reader over
// JSONL or msgpack-framed files, with transparent gzip/zstd
// decompression so captured sessions can be stored compressed.
package recordsource

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/avsurv/astmops/record"
)

// Reader yields one record.Input at a time. Next returns (Input, nil) on
// success, (zero, io.EOF) when the stream is exhausted, or (zero, err)
// on a malformed record.
type Reader interface {
	Next() (record.Input, error)
	Close() error
}

// Open returns a Reader for path, selecting the framing (JSONL vs.
// msgpack) by extension and transparently unwrapping .gz/.zst
// compression: foo.jsonl, foo.jsonl.gz, foo.msgpack.zst are all valid.
func Open(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	base := path
	var r io.Reader = bufio.NewReader(f)
	closers := []io.Closer{f}

	switch filepath.Ext(base) {
	case ".gz":
		base = strip(base, ".gz")
		gr, err := gzip.NewReader(r)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		r = gr
		closers = append(closers, gr)
	case ".zst":
		base = strip(base, ".zst")
		zr, err := zstd.NewReader(r)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		r = zr
		closers = append(closers, zstdCloser{zr})
	}

	switch filepath.Ext(base) {
	case ".jsonl", ".json":
		return &jsonlReader{dec: json.NewDecoder(r), closers: closers}, nil
	case ".msgpack", ".mp":
		return &msgpackReader{dec: msgpack.NewDecoder(r), closers: closers}, nil
	default:
		closeAll(closers)
		return nil, fmt.Errorf("recordsource: unrecognized record stream extension: %s", path)
	}
}

func strip(path, ext string) string {
	return path[:len(path)-len(ext)]
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
}

// zstdCloser adapts *zstd.Decoder's non-error-returning Close to
// io.Closer.
type zstdCloser struct{ d *zstd.Decoder }

func (c zstdCloser) Close() error {
	c.d.Close()
	return nil
}

// jsonlReader reads one JSON-encoded record.Input object per line.
type jsonlReader struct {
	dec     *json.Decoder
	closers []io.Closer
}

func (r *jsonlReader) Next() (record.Input, error) {
	var in record.Input
	if err := r.dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return record.Input{}, io.EOF
		}
		return record.Input{}, fmt.Errorf("recordsource: decode JSONL record: %w", err)
	}
	return in, nil
}

func (r *jsonlReader) Close() error {
	closeAll(r.closers)
	return nil
}

// msgpackReader reads one msgpack-encoded record.Input per message.
type msgpackReader struct {
	dec     *msgpack.Decoder
	closers []io.Closer
}

func (r *msgpackReader) Next() (record.Input, error) {
	var in record.Input
	if err := r.dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return record.Input{}, io.EOF
		}
		return record.Input{}, fmt.Errorf("recordsource: decode msgpack record: %w", err)
	}
	return in, nil
}

func (r *msgpackReader) Close() error {
	closeAll(r.closers)
	return nil
}
