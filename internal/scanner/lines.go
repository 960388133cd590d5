package scanner

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/harrison/logscan/internal/matcher"
	"github.com/harrison/logscan/internal/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	initialLineBuffer = 64 * 1024
	gzipPeekBytes     = 2 * 1024
)

// scanReader reads r line by line, adding each line to result under file.
// It returns the per-file line and match counts together with the first read
// error; lines read before the error have already been added.
func (s *FileScanner) scanReader(file string, r io.Reader, m matcher.Matcher, result *models.ScanResult) (lines, matched int, err error) {
	src, closeSrc, err := s.decode(r)
	if err != nil {
		return 0, 0, err
	}
	defer closeSrc()

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, min(initialLineBuffer, s.maxLineBytes)), s.maxLineBytes)
	sc.Split(scanUniversalLines)

	for sc.Scan() {
		lines++
		text := sc.Text()
		hit := m.Match(text)
		if hit {
			matched++
			s.logger.LogMatch(models.Sample{File: file, LineNo: lines, Text: text})
		}
		result.AddLine(file, lines, text, hit)
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return lines, matched, fmt.Errorf("line %d exceeds %d bytes", lines+1, s.maxLineBytes)
		}
		return lines, matched, err
	}
	return lines, matched, nil
}

// decode wraps r with gzip decompression when enabled and the stream carries
// the gzip magic, then with a UTF-8 decoder that strips a leading BOM and
// replaces invalid sequences with U+FFFD.
func (s *FileScanner) decode(r io.Reader) (io.Reader, func() error, error) {
	closer := func() error { return nil }

	if s.detectGzip {
		br := bufio.NewReaderSize(r, gzipPeekBytes)
		// Peek reports a short read at EOF; whatever arrived is still returned
		hdr, _ := br.Peek(gzipPeekBytes)
		if looksGzipped(hdr) {
			gzr, gzErr := gzip.NewReader(br)
			if gzErr != nil {
				return nil, nil, gzErr
			}
			r = gzr
			closer = gzr.Close
		} else {
			r = br
		}
	}

	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), closer, nil
}

// looksGzipped reports whether hdr starts with a gzip member header. Text that
// merely begins with the magic bytes fails header parsing with gzip.ErrHeader
// and is read as plain text. A header longer than hdr still counts as gzip.
func looksGzipped(hdr []byte) bool {
	if len(hdr) < 2 || hdr[0] != 0x1f || hdr[1] != 0x8b {
		return false
	}
	_, err := gzip.NewReader(bytes.NewReader(hdr))
	return !errors.Is(err, gzip.ErrHeader)
}

// scanUniversalLines is a bufio.SplitFunc that ends a line at "\n", "\r\n",
// or a lone "\r". The terminator is dropped and a final terminator does not
// produce an empty trailing line.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// Need the next byte to tell "\r\n" from a lone "\r"
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
