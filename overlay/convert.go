// Package overlay converts device-tree overlay sources from the expanded
// form (explicit fragment@N wrapper nodes with a target property and an
// __overlay__ body) into the syntactic-sugar form where each fragment
// collapses into a single node named by its resolved target.
//
// The conversion is textual: each line is classified by shape and
// re-emitted while the converter tracks nesting depth and fragment
// context. No device-tree AST is built, and multi-line property values,
// preprocessor directives, and braces inside strings or comments are not
// handled.
package overlay

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type targetKind int

const (
	targetNone targetKind = iota
	targetRef
	targetPath
)

// elision records a node open that produced no output, so that the
// matching close is suppressed as well. At most one entry exists per
// depth, and entries are ordered by depth.
type elision struct {
	depth    int
	fragment bool
}

// Converter is the depth and fragment state machine. It consumes one line
// at a time via ConvertLine and writes the transformed lines to out;
// diagnostics go to the configured Reporter, never into the output stream.
type Converter struct {
	out      io.Writer
	reporter Reporter

	force     bool
	verbose   bool
	indentFix bool

	lineNum int
	depth   int
	elided  []elision

	inFragment  bool
	fragLabel   string
	pendingKind targetKind
	pendingVal  string

	inRootProps bool

	diags Diagnostics
}

// Option configures a Converter.
type Option func(*Converter)

// WithForce downgrades fatal structural errors to counted errors and keeps
// converting, emitting best-effort markers instead of halting.
func WithForce() Option {
	return func(c *Converter) { c.force = true }
}

// WithVerbose reports every warning occurrence instead of only the first
// one per category.
func WithVerbose() Option {
	return func(c *Converter) { c.verbose = true }
}

// WithoutIndentFix disables the removal of the two tab stops of nesting
// introduced by the elided wrapper nodes.
func WithoutIndentFix() Option {
	return func(c *Converter) { c.indentFix = false }
}

// WithReporter directs warnings and suppressed errors to r.
func WithReporter(r Reporter) Option {
	return func(c *Converter) { c.reporter = r }
}

// NewConverter returns a converter writing transformed lines to out.
func NewConverter(out io.Writer, opts ...Option) *Converter {
	c := &Converter{
		out:       out,
		reporter:  discardReporter{},
		indentFix: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Diagnostics returns the counts accumulated so far.
func (c *Converter) Diagnostics() Diagnostics {
	return c.diags
}

// ConvertLine processes the next input line, with or without its line
// terminator. It returns a *FatalError when a structural error aborts the
// run with force mode off, or the underlying write error.
func (c *Converter) ConvertLine(text string) error {
	c.lineNum++
	text = strings.TrimRight(text, "\r\n")
	line := Classify(text, c.inFragment)

	switch line.Shape {
	case NodeOpen:
		return c.nodeOpen(line)
	case NodeClose:
		return c.nodeClose(line)
	case TargetProperty:
		// Last one wins when both target forms appear in a fragment.
		c.pendingKind, c.pendingVal = targetRef, line.Value
		return nil
	case TargetPathProperty:
		c.pendingKind, c.pendingVal = targetPath, line.Value
		c.diags.Warnings++
		c.reporter.Warningf(c.lineNum, "target-path not supported")
		return nil
	default:
		return c.plainLine(line)
	}
}

// Finish emits the synthesized root-node closing line if a root property
// block is still open. Call it once after the last line.
func (c *Converter) Finish() error {
	return c.closeRootProps()
}

func (c *Converter) nodeOpen(line Line) error {
	c.depth++

	// Entering a second-level node ends a run of loose root properties.
	if c.depth == 2 {
		if err := c.closeRootProps(); err != nil {
			return err
		}
	}

	switch {
	case c.depth == 2 && isFragmentName(line.Name):
		c.inFragment = true
		c.fragLabel = line.Name
		c.pendingKind = targetNone
		c.elided = append(c.elided, elision{depth: c.depth, fragment: true})
		return nil

	case line.Name == "__overlay__":
		return c.openOverlay(line)

	case strings.HasPrefix(line.Name, "_"):
		c.diags.Errors++
		if !c.force {
			return &FatalError{
				Line:   c.lineNum,
				Status: StatusIllegalName,
				Msg:    fmt.Sprintf("illegal node name %q", line.Name),
			}
		}
		c.reporter.Errorf(c.lineNum, "illegal node name %q", line.Name)
		c.elided = append(c.elided, elision{depth: c.depth})
		return nil

	case c.depth == 1 && line.Name == "/":
		// The root wrapper disappears; loose properties inside it are
		// re-wrapped by the root property block.
		c.elided = append(c.elided, elision{depth: c.depth})
		return nil

	default:
		return c.emit(c.adjust(line.Text))
	}
}

// openOverlay resolves the pending target of the enclosing fragment and
// opens the replacement node under that name.
func (c *Converter) openOverlay(line Line) error {
	indent := line.Indent
	if c.indentFix && c.depth > 1 {
		indent = unwrapIndent(indent)
	}

	kind, val := c.pendingKind, c.pendingVal
	c.pendingKind = targetNone

	switch kind {
	case targetRef:
		return c.emit(indent + val + "  {")
	case targetPath:
		return c.emit(indent + val + " {")
	default:
		label := c.fragLabel
		if label == "" {
			label = "__overlay__"
		}
		msg := fmt.Sprintf("no 'target' property in node %s", label)
		if !c.force {
			return &FatalError{Line: c.lineNum, Status: StatusMissingTarget, Msg: msg}
		}
		c.diags.Errors++
		c.reporter.Errorf(c.lineNum, "%s", msg)
		if err := c.emit(indent + "/* " + msg + " */"); err != nil {
			return err
		}
		return c.emit(c.adjust(line.Text))
	}
}

func (c *Converter) nodeClose(line Line) error {
	if n := len(c.elided); n > 0 && c.elided[n-1].depth == c.depth {
		e := c.elided[n-1]
		c.elided = c.elided[:n-1]
		if e.fragment {
			c.inFragment = false
			c.fragLabel = ""
			c.pendingKind = targetNone
		} else if e.depth == 1 {
			// The elided root wrapper closes; the synthesized block
			// cannot stay open past it.
			if err := c.closeRootProps(); err != nil {
				return err
			}
		}
		c.depth--
		return nil
	}

	err := c.emit(c.adjust(line.Text))
	c.depth--
	return err
}

func (c *Converter) plainLine(line Line) error {
	if !c.inFragment && c.depth == 1 && c.insideElidedRoot() && isPropertyLine(line.Text) {
		if !c.inRootProps {
			c.inRootProps = true
			if err := c.emit("/ {"); err != nil {
				return err
			}
		}
		c.diags.RootProperties++
		if c.verbose || c.diags.RootProperties == 1 {
			c.diags.Warnings++
			c.reporter.Warningf(c.lineNum, "property %q found in root node", propertyName(line.Text))
		}
	}
	return c.emit(c.adjust(line.Text))
}

func (c *Converter) closeRootProps() error {
	if !c.inRootProps {
		return nil
	}
	c.inRootProps = false
	return c.emit("};")
}

// insideElidedRoot reports whether the current position is directly inside
// a removed "/" wrapper node. Properties inside an already-sugared node at
// depth 1 must not be mistaken for loose root properties.
func (c *Converter) insideElidedRoot() bool {
	return len(c.elided) > 0 && c.elided[0].depth == 1 && !c.elided[0].fragment
}

func (c *Converter) adjust(text string) string {
	if c.indentFix && c.depth > 1 {
		return unwrapIndent(text)
	}
	return text
}

func (c *Converter) emit(text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// Convert reads an expanded overlay source from r and writes the sugar
// form to w. The returned Diagnostics is valid even when err is non-nil.
func Convert(r io.Reader, w io.Writer, opts ...Option) (Diagnostics, error) {
	c := NewConverter(w, opts...)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := c.ConvertLine(sc.Text()); err != nil {
			return c.diags, err
		}
	}
	if err := sc.Err(); err != nil {
		return c.diags, fmt.Errorf("read input: %w", err)
	}
	if err := c.Finish(); err != nil {
		return c.diags, err
	}
	return c.diags, nil
}
