package overlay

import "strings"

// Shape tags the syntactic shape of one input line.
type Shape int

const (
	PlainLine Shape = iota
	NodeOpen
	NodeClose
	TargetProperty
	TargetPathProperty
)

func (s Shape) String() string {
	switch s {
	case NodeOpen:
		return "node-open"
	case NodeClose:
		return "node-close"
	case TargetProperty:
		return "target"
	case TargetPathProperty:
		return "target-path"
	default:
		return "plain"
	}
}

// Line is one classified input line. Text holds the line without its
// terminator; the remaining fields are filled depending on the shape.
type Line struct {
	Shape  Shape
	Text   string
	Indent string // leading whitespace (NodeOpen, NodeClose)
	Name   string // node name before the brace (NodeOpen)
	Value  string // extracted target reference or path (Target*)
}

// Classify inspects one line and tags its shape. Brace detection takes
// precedence over property detection, and target/target-path assignments
// are only recognized inside a fragment node; everywhere else they are
// ordinary plain lines.
func Classify(text string, inFragment bool) Line {
	line := Line{Shape: PlainLine, Text: text}

	if i := strings.IndexByte(text, '{'); i >= 0 {
		line.Shape = NodeOpen
		line.Indent = leadingWhitespace(text)
		line.Name = strings.TrimSpace(text[len(line.Indent):i])
		return line
	}
	if strings.IndexByte(text, '}') >= 0 {
		line.Shape = NodeClose
		line.Indent = leadingWhitespace(text)
		return line
	}
	if !inFragment {
		return line
	}
	if v, ok := assignedValue(text, "target", '<', '>'); ok {
		line.Shape = TargetProperty
		line.Value = v
		return line
	}
	if v, ok := assignedValue(text, "target-path", '"', '"'); ok {
		line.Shape = TargetPathProperty
		line.Value = v
		return line
	}
	return line
}

func leadingWhitespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}

// assignedValue matches `name = <open>value<end>;` modulo whitespace and
// returns the text strictly between the open and end delimiters.
func assignedValue(text, name string, open, end byte) (string, bool) {
	s := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(s, name) {
		return "", false
	}
	s = strings.TrimLeft(s[len(name):], " \t")
	if len(s) == 0 || s[0] != '=' {
		return "", false
	}
	s = strings.TrimLeft(s[1:], " \t")
	if len(s) == 0 || s[0] != open {
		return "", false
	}
	s = s[1:]
	stop := strings.IndexByte(s, end)
	if stop < 0 {
		return "", false
	}
	return s[:stop], true
}

// isFragmentName reports whether name has the exact fragment@<digits>
// shape. Labeled fragments ("frag0: fragment@0") do not match and pass
// through as ordinary nodes.
func isFragmentName(name string) bool {
	const prefix = "fragment@"
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	digits := name[len(prefix):]
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// isPropertyLine reports whether the line starts, after whitespace, with a
// property-name token followed by '='.
func isPropertyLine(text string) bool {
	return propertyName(text) != ""
}

// propertyName returns the property-name token of an assignment line, or ""
// when the line is not an assignment.
func propertyName(text string) string {
	s := strings.TrimLeft(text, " \t")
	i := 0
	for i < len(s) && isPropertyNameByte(s[i]) {
		i++
	}
	if i == 0 {
		return ""
	}
	rest := strings.TrimLeft(s[i:], " \t")
	if !strings.HasPrefix(rest, "=") {
		return ""
	}
	return s[:i]
}

func isPropertyNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case ',', '.', '_', '+', '-', '?', '#':
		return true
	}
	return false
}
