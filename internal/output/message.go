package output

import "fmt"

// MIDI status nibbles for channel voice messages.
const (
	StatusNoteOff byte = 0x80
	StatusNoteOn  byte = 0x90
)

// Message is a three-byte MIDI channel voice message.
type Message struct {
	Status byte
	Data1  byte
	Data2  byte
}

// NoteOn builds an attack message.
func NoteOn(channel, note, velocity uint8) Message {
	return Message{Status: StatusNoteOn | (channel & 0x0F), Data1: note & 0x7F, Data2: velocity & 0x7F}
}

// NoteOff builds a release message; the release velocity is always zero.
func NoteOff(channel, note uint8) Message {
	return Message{Status: StatusNoteOff | (channel & 0x0F), Data1: note & 0x7F}
}

// Channel returns the 0-based channel of the message.
func (m Message) Channel() uint8 { return m.Status & 0x0F }

// Kind returns "note_on", "note_off" or "other".
func (m Message) Kind() string {
	switch m.Status & 0xF0 {
	case StatusNoteOn:
		return "note_on"
	case StatusNoteOff:
		return "note_off"
	default:
		return "other"
	}
}

// Bytes returns the raw wire form.
func (m Message) Bytes() []byte { return []byte{m.Status, m.Data1, m.Data2} }

func (m Message) String() string {
	return fmt.Sprintf("%s ch=%d note=%d vel=%d", m.Kind(), m.Channel(), m.Data1, m.Data2)
}
