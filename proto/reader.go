package proto

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

// Reader reads protocol lines from a byte stream.
// It buffers partial reads and splits strictly on '\n'.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r. An existing *bufio.Reader is used as is.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{br: br}
	}
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line without its '\n' terminator.
// Nothing else is trimmed: values may legitimately end with spaces.
//
// Returns io.EOF when the stream ends on a line boundary, and
// io.ErrUnexpectedEOF when it ends in the middle of a line.
// Other errors come from the underlying stream.
func (r *Reader) ReadLine() (string, error) {
	// ReadSlice avoids an allocation per line; it returns a slice into the
	// buffer, so it must be copied before the next read.
	line, err := r.br.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Line exceeds buffer, fall back to ReadBytes (allocates)
		head := append([]byte(nil), line...)
		var tail []byte
		tail, err = r.br.ReadBytes('\n')
		line = append(head, tail...)
	}
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return string(line[:len(line)-1]), nil
}

// ReadBanner reads the greeting sent by the server on connect.
func ReadBanner(r *Reader) (Version, error) {
	line, err := r.ReadLine()
	if err != nil {
		return Version{}, readError(err)
	}
	return ParseBanner(line)
}

// Scanner decodes one response into a lazy, single-pass sequence of pairs.
//
// Scanning stops at the first terminator line and never reads past it, so
// the stream stays framed for the next command:
//   - "OK": the sequence ends, Err returns nil
//   - "ACK ...": the sequence ends, Err returns the *AckError
//   - anything else must be a "key: value" pair
//
// Usage:
//
//	s := proto.NewScanner(r)
//	for s.Next() {
//	    p := s.Pair()
//	    ...
//	}
//	if err := s.Err(); err != nil {
//	    ...
//	}
type Scanner struct {
	r *Reader

	// SplitLists makes a "list_OK" line end the current segment instead of
	// being a malformed pair. Next returns false at the segment end with
	// Done false, and the next call to Next continues with the following
	// command's pairs.
	SplitLists bool

	pair Pair
	err  error
	done bool // terminator consumed or stream unusable
}

// NewScanner returns a scanner reading one response from r.
func NewScanner(r *Reader) *Scanner {
	return &Scanner{r: r}
}

// Next advances to the next pair. It returns false at the end of the
// response, at the end of a list segment, or on error.
func (s *Scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	line, err := s.r.ReadLine()
	if err != nil {
		s.finish(readError(err))
		return false
	}

	switch {
	case line == ResponseOK:
		s.finish(nil)
		return false

	case s.SplitLists && line == ResponseListOK:
		return false

	case strings.HasPrefix(line, AckPrefix):
		ack, err := ParseAck(line)
		if err != nil {
			s.finish(err)
		} else {
			s.finish(ack)
		}
		return false
	}

	pair, err := ParsePair(line)
	if err != nil {
		// Not done: Drain can still find the terminator.
		s.err = err
		return false
	}

	s.pair = pair
	return true
}

// Pair returns the pair read by the last successful call to Next.
func (s *Scanner) Pair() Pair {
	return s.pair
}

// Err returns the error that ended the sequence, nil on "OK".
func (s *Scanner) Err() error {
	return s.err
}

// Done reports whether the response terminator has been consumed, or the
// stream cannot be read anymore.
func (s *Scanner) Done() bool {
	return s.done
}

// Drain consumes the rest of the response up to its terminator and returns
// the error that ended it. After a malformed line the remaining lines are
// skipped without decoding, to resynchronize on the terminator; if the
// stream fails meanwhile, that failure replaces the malformed line error.
func (s *Scanner) Drain() error {
	for !s.done {
		if s.err == nil {
			s.Next()
			continue
		}

		line, err := s.r.ReadLine()
		if err != nil {
			s.finish(readError(err))
			break
		}
		if line == ResponseOK || strings.HasPrefix(line, AckPrefix) {
			s.done = true
		}
	}
	return s.err
}

// All returns the remaining pairs as an iterator. A terminal error is
// yielded once, as the last item.
func (s *Scanner) All() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for s.Next() {
			if !yield(s.pair, nil) {
				return
			}
		}
		if s.err != nil {
			yield(Pair{}, s.err)
		}
	}
}

// Record collects the pairs up to the next terminator or list segment end.
// On error no record is returned.
func (s *Scanner) Record() (Record, error) {
	var rec Record
	for s.Next() {
		rec = append(rec, s.pair)
	}
	if s.err != nil {
		return nil, s.err
	}
	return rec, nil
}

func (s *Scanner) finish(err error) {
	s.err = err
	s.done = true
}

// readError classifies a ReadLine failure: a stream that ends before the
// terminator is a protocol violation, anything else is a connectivity
// failure.
func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ProtocolError{Kind: KindNoTerminator, Err: err}
	}
	return &ConnectionError{Op: "read", Err: err}
}
