package mpd

var (
	// ChannelDecoder decodes the records of channels.
	ChannelDecoder = FromMap("channel", decodeChannel)

	// MessageDecoder decodes the records of readmessages.
	MessageDecoder = FromMap("channel", decodeMessage)
)

// Channel is a client-to-client channel with at least one subscriber.
type Channel struct {
	Name string
}

// Message is a message received on a subscribed channel.
type Message struct {
	Channel string
	Message string
}

func decodeChannel(f Fields) (Channel, error) {
	name, err := f.String("channel")
	if err != nil {
		return Channel{}, err
	}
	return Channel{Name: name}, nil
}

func decodeMessage(f Fields) (Message, error) {
	channel, err := f.String("channel")
	if err != nil {
		return Message{}, err
	}
	message, err := f.String("message")
	if err != nil {
		return Message{}, err
	}
	return Message{Channel: channel, Message: message}, nil
}
