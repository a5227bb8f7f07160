package proto

import "strings"

// Pair is one "key: value" response line. Keys are case-sensitive and may
// repeat within a response.
type Pair struct {
	Key   string
	Value string
}

// ParsePair splits line on the first ": ".
// A line without separator is a *ProtocolError of kind KindBadPair.
func ParsePair(line string) (Pair, error) {
	key, value, ok := strings.Cut(line, Separator)
	if !ok || key == "" {
		return Pair{}, &ProtocolError{Kind: KindBadPair, Line: line}
	}
	return Pair{Key: key, Value: value}, nil
}

// Record is the ordered list of pairs making up one logical record.
type Record []Pair

// Get returns the value of the first pair with key.
func (r Record) Get(key string) (string, bool) {
	for _, p := range r {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns the values of every pair with key, in wire order.
func (r Record) Values(key string) []string {
	var values []string
	for _, p := range r {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Split cuts r into records, each starting at a pair whose key is
// startKey. Pairs before the first startKey are returned in head.
//
//	file: a.mp3      <- record 0
//	Title: A
//	file: b.mp3      <- record 1
func (r Record) Split(startKey string) (head Record, records []Record) {
	start := -1
	for i, p := range r {
		if p.Key != startKey {
			continue
		}
		if start >= 0 {
			records = append(records, r[start:i])
		} else {
			head = r[:i]
		}
		start = i
	}
	if start >= 0 {
		records = append(records, r[start:])
	} else {
		head = r
	}
	return head, records
}
