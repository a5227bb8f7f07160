package proto

import (
	"errors"
	"strconv"
	"strings"
)

// ParseAck decodes a failure line:
//
//	ACK [<code>@<index>] {<command>} <message>
//
// The command name may be empty ("{}") and so may the message. Any other
// deviation is returned as a *ProtocolError of kind KindBadAck, never as an
// *AckError, so that a version mismatch is not mistaken for a server
// rejection.
func ParseAck(line string) (*AckError, error) {
	rest, ok := strings.CutPrefix(line, AckPrefix)
	if !ok {
		return nil, badAck(line, errors.New("missing ACK prefix"))
	}

	rest, ok = strings.CutPrefix(rest, "[")
	if !ok {
		return nil, badAck(line, errors.New("missing '['"))
	}
	inner, rest, ok := strings.Cut(rest, "] ")
	if !ok {
		return nil, badAck(line, errors.New("missing ']'"))
	}
	codeText, indexText, ok := strings.Cut(inner, "@")
	if !ok {
		return nil, badAck(line, errors.New("missing '@'"))
	}
	code, err := strconv.Atoi(codeText)
	if err != nil {
		return nil, badAck(line, err)
	}
	index, err := strconv.Atoi(indexText)
	if err != nil {
		return nil, badAck(line, err)
	}

	rest, ok = strings.CutPrefix(rest, "{")
	if !ok {
		return nil, badAck(line, errors.New("missing '{'"))
	}
	command, message, ok := strings.Cut(rest, "}")
	if !ok {
		return nil, badAck(line, errors.New("missing '}'"))
	}
	// The space after '}' is absent when the message is empty.
	message = strings.TrimPrefix(message, Space)

	return &AckError{
		Code:         AckCode(code),
		CommandIndex: index,
		Command:      command,
		Message:      message,
	}, nil
}

func badAck(line string, err error) *ProtocolError {
	return &ProtocolError{Kind: KindBadAck, Line: line, Err: err}
}
