package comm

import (
	"fmt"
	"strings"
)

// Structs

// Message represents the snapshot payload an agent broadcasts to its peers.
// It carries a unique ID used to trace redeliveries in logs, the sending
// agent's name, and the full element payload of the sender's set.
type Message struct {
	ID       string
	Agent    string
	Elements []string
}

// TypeMismatchError reports a snapshot entry that does not hold an element
// of the expected type. It is raised at ingestion time, before any part of
// the offending snapshot is merged.
type TypeMismatchError struct {
	Index int
	Value interface{}
}

// Functions

// Error renders position and dynamic type of the offending snapshot entry.
func (e *TypeMismatchError) Error() string {

	return fmt.Sprintf("snapshot entry %d is not a string element but %T", e.Index, e.Value)
}

// escapeElement masks the wire delimiter and the escape character itself so
// that any element value survives marshalling unchanged.
func escapeElement(e string) string {

	e = strings.Replace(e, "%", "%25", -1)

	return strings.Replace(e, "|", "%7C", -1)
}

// unescapeElement reverses escapeElement.
func unescapeElement(e string) string {

	e = strings.Replace(e, "%7C", "|", -1)

	return strings.Replace(e, "%25", "%", -1)
}

// String takes in a struct of type Message and turns it into its marshalled
// single-line version, ready to be sent to a peer:
// sync|<id>|<agent>|<elem>|<elem>|...
func (msg *Message) String() string {

	// Each sync network message starts with the
	// operation at the beginning.
	marshalled := fmt.Sprintf("sync|%s|%s", msg.ID, msg.Agent)

	// Range over payload elements and append each.
	for _, e := range msg.Elements {
		marshalled = fmt.Sprintf("%s|%s", marshalled, escapeElement(e))
	}

	return marshalled
}

// Parse takes in a marshalled (string) version of a Message taken from
// network communication and turns it back into the defined struct
// representation.
func Parse(msgRaw string) (*Message, error) {

	// Split message at pipe delimiters.
	parts := strings.Split(msgRaw, "|")

	// If there are less than three parts, this sync message
	// is invalid: sync|id|agent|elements...
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid sync message found during parsing")
	}

	// Considering the snapshot exchange, we only accept sync messages.
	if parts[0] != "sync" {
		return nil, fmt.Errorf("unsupported operation specified in sync message")
	}

	if (parts[1] == "") || (parts[2] == "") {
		return nil, fmt.Errorf("sync message carries empty message ID or agent name")
	}

	// Unescape all payload elements.
	elements := make([]string, 0, (len(parts) - 3))
	for _, e := range parts[3:] {
		elements = append(elements, unescapeElement(e))
	}

	return &Message{
		ID:       parts[1],
		Agent:    parts[2],
		Elements: elements,
	}, nil
}

// IngestSnapshot validates a snapshot that arrived through an external
// decoder, e.g. a JSON array unmarshalled into untyped values, and returns
// its entries as typed elements. The first entry that is not a string
// element rejects the whole snapshot with a TypeMismatchError, before
// anything is merged.
func IngestSnapshot(entries []interface{}) ([]string, error) {

	elements := make([]string, 0, len(entries))

	for i, entry := range entries {

		e, ok := entry.(string)
		if !ok {
			return nil, &TypeMismatchError{
				Index: i,
				Value: entry,
			}
		}

		elements = append(elements, e)
	}

	return elements, nil
}
