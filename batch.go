package mpd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/pior/mpd/proto"
)

// ExecBatch sends cmds as one command list and returns one record per
// command, in order.
//
// The server stops at the first failing command. Its ACK is returned as
// an *proto.AckError whose CommandIndex is the position of that command,
// together with the records of the commands that succeeded before it.
func (c *Conn) ExecBatch(ctx context.Context, cmds ...proto.Command) ([]proto.Record, error) {
	if len(cmds) == 0 {
		return nil, nil
	}

	records := make([]proto.Record, 0, len(cmds))
	err := c.run(ctx, proto.CmdListOKBegin, func(w *bufio.Writer) error {
		return proto.WriteCommandList(w, cmds...)
	}, func(s *proto.Scanner) error {
		s.SplitLists = true
		for {
			rec, err := s.Record()
			if err != nil {
				return err
			}
			if s.Done() {
				break
			}
			records = append(records, rec)
		}

		if len(records) != len(cmds) {
			return &proto.ProtocolError{
				Kind: proto.KindUnexpectedKey,
				Line: proto.ResponseOK,
				Err:  fmt.Errorf("got %d list_OK for %d commands", len(records), len(cmds)),
			}
		}
		return nil
	})
	return records, err
}
