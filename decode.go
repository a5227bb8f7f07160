package mpd

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/pior/mpd/proto"
)

// Decoder turns the pairs of one record into a T.
//
// StartKey is the key that opens a new record when a response carries a
// list of them, e.g. "file" for songs or "outputid" for outputs.
type Decoder[T any] interface {
	StartKey() string
	Decode(rec proto.Record) (T, error)
}

// PairDecoder is implemented by records decoded key by key.
// DecodePair is called once per pair, in wire order.
type PairDecoder[T any] interface {
	*T
	DecodePair(p proto.Pair) error
}

// FromPairs returns a Decoder for records whose keys may repeat or arrive
// in any order. Each pair is dispatched to T's DecodePair; the first error
// aborts the record and no partial value is returned.
func FromPairs[T any, PT PairDecoder[T]](startKey string) Decoder[T] {
	return pairsDecoder[T, PT]{startKey: startKey}
}

type pairsDecoder[T any, PT PairDecoder[T]] struct {
	startKey string
}

func (d pairsDecoder[T, PT]) StartKey() string { return d.startKey }

func (d pairsDecoder[T, PT]) Decode(rec proto.Record) (T, error) {
	var v T
	for _, p := range rec {
		if err := PT(&v).DecodePair(p); err != nil {
			var zero T
			return zero, err
		}
	}
	return v, nil
}

// FromMap returns a Decoder for records whose keys appear at most once.
// The record is collected into Fields first, then fn pulls each field.
func FromMap[T any](startKey string, fn func(Fields) (T, error)) Decoder[T] {
	return mapDecoder[T]{startKey: startKey, fn: fn}
}

type mapDecoder[T any] struct {
	startKey string
	fn       func(Fields) (T, error)
}

func (d mapDecoder[T]) StartKey() string { return d.startKey }

func (d mapDecoder[T]) Decode(rec proto.Record) (T, error) {
	v, err := d.fn(NewFields(rec))
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// RecordDecoder returns records undecoded.
var RecordDecoder Decoder[proto.Record] = recordDecoder{}

type recordDecoder struct{}

func (recordDecoder) StartKey() string { return "" }

func (recordDecoder) Decode(rec proto.Record) (proto.Record, error) {
	return rec, nil
}

// Fields is a keyed view of a record. When a key repeats, the last value
// wins; Values returns all of them.
type Fields struct {
	rec proto.Record
	m   map[string]string
}

// NewFields indexes rec by key.
func NewFields(rec proto.Record) Fields {
	m := make(map[string]string, len(rec))
	for _, p := range rec {
		m[p.Key] = p.Value
	}
	return Fields{rec: rec, m: m}
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.m[key]
	return ok
}

// Optional returns the value of key, or "" when absent.
func (f Fields) Optional(key string) string {
	return f.m[key]
}

// Values returns every value of key, in wire order.
func (f Fields) Values(key string) []string {
	return f.rec.Values(key)
}

// String returns the value of a required key.
func (f Fields) String(key string) (string, error) {
	v, ok := f.m[key]
	if !ok {
		return "", &proto.MissingFieldError{Field: key}
	}
	return v, nil
}

// Uint returns a required unsigned 32-bit field.
func (f Fields) Uint(key string) (uint32, error) {
	v, err := f.String(key)
	if err != nil {
		return 0, err
	}
	return parseUint32(key, v)
}

// Bool returns a required "0"/"1" field.
func (f Fields) Bool(key string) (bool, error) {
	v, err := f.String(key)
	if err != nil {
		return false, err
	}
	switch v {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, badValue(key, v, errors.New("expected 0 or 1"))
}

// Seconds returns a required duration given in whole seconds.
func (f Fields) Seconds(key string) (time.Duration, error) {
	v, err := f.String(key)
	if err != nil {
		return 0, err
	}
	return parseSeconds(key, v)
}

// Unix returns a required UNIX timestamp.
func (f Fields) Unix(key string) (time.Time, error) {
	v, err := f.String(key)
	if err != nil {
		return time.Time{}, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, badValue(key, v, err)
	}
	return time.Unix(n, 0), nil
}

func badValue(key, value string, err error) *proto.ParseError {
	return &proto.ParseError{Key: key, Value: value, Err: err}
}

func parseUint32(key, value string) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, badValue(key, value, err)
	}
	return uint32(n), nil
}

func parseSeconds(key, value string) (time.Duration, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, badValue(key, value, err)
	}
	return time.Duration(n) * time.Second, nil
}

// parseFractionalSeconds converts "12.345" to whole milliseconds, truncating
// anything finer.
func parseFractionalSeconds(value string) (time.Duration, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("invalid duration")
	}
	if f > maxSeconds {
		return 0, errors.New("duration out of range")
	}
	return time.Duration(int64(f*1000)) * time.Millisecond, nil
}

// maxSeconds is the largest number of seconds a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// parseTime accepts the ISO 8601 UTC timestamps used by Last-Modified.
func parseTime(key, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, badValue(key, value, err)
	}
	return t, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
