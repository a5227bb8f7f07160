package proto

import "strconv"

// Protocol delimiters
const (
	// LF is the line terminator for the MPD protocol
	LF = "\n"

	// Separator splits a response line into key and value
	Separator = ": "

	// Space separates command tokens
	Space = " "
)

// Response terminators
const (
	// ResponseOK ends a successful response.
	ResponseOK = "OK"

	// ResponseListOK ends the response of one command inside a
	// command_list_ok_begin batch.
	ResponseListOK = "list_OK"

	// BannerPrefix starts the greeting line sent on connect:
	//
	//	OK MPD 0.23.5
	BannerPrefix = "OK MPD "

	// AckPrefix starts a failure line:
	//
	//	ACK [<code>@<index>] {<command>} <message>
	AckPrefix = "ACK "
)

// Command list framing
const (
	CmdListBegin   = "command_list_begin"
	CmdListOKBegin = "command_list_ok_begin"
	CmdListEnd     = "command_list_end"
)

// Commands the wire layer itself needs to know about
const (
	CmdIdle   = "idle"
	CmdNoIdle = "noidle"
)

// AckCode is the numeric error code carried by an ACK line.
type AckCode int

// Error codes sent by the server, see src/protocol/Ack.hxx in MPD.
const (
	AckNotList       AckCode = 1
	AckArg           AckCode = 2
	AckPassword      AckCode = 3
	AckPermission    AckCode = 4
	AckUnknown       AckCode = 5
	AckNoExist       AckCode = 50
	AckPlaylistMax   AckCode = 51
	AckSystem        AckCode = 52
	AckPlaylistLoad  AckCode = 53
	AckUpdateAlready AckCode = 54
	AckPlayerSync    AckCode = 55
	AckExist         AckCode = 56
)

var ackCodeNames = map[AckCode]string{
	AckNotList:       "not list",
	AckArg:           "arg",
	AckPassword:      "password",
	AckPermission:    "permission",
	AckUnknown:       "unknown",
	AckNoExist:       "no exist",
	AckPlaylistMax:   "playlist max",
	AckSystem:        "system",
	AckPlaylistLoad:  "playlist load",
	AckUpdateAlready: "update already",
	AckPlayerSync:    "player sync",
	AckExist:         "exist",
}

func (c AckCode) String() string {
	if name, ok := ackCodeNames[c]; ok {
		return name
	}
	return "code " + strconv.Itoa(int(c))
}
