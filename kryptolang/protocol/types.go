package protocol

type MessageType uint8

const (
	MessageTypeParse   MessageType = 1
	MessageTypeLexicon MessageType = 2
	MessageTypeGrammar MessageType = 3
	MessageTypeCipher  MessageType = 4
	MessageTypeProcess MessageType = 5
	MessageTypeResult  MessageType = 6
	MessageTypeError   MessageType = 7

	maxMessageType = MessageTypeError
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeParse:
		return "PARSE"
	case MessageTypeLexicon:
		return "LEXICON"
	case MessageTypeGrammar:
		return "GRAMMAR"
	case MessageTypeCipher:
		return "CIPHER"
	case MessageTypeProcess:
		return "PROCESS"
	case MessageTypeResult:
		return "RESULT"
	case MessageTypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (t MessageType) valid() bool { return t > 0 && t <= maxMessageType }
