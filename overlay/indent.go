package overlay

// unwrapIndent removes the two tab stops of nesting that the elided
// fragment and __overlay__ wrapper nodes contributed to a line. It strips
// exactly one occurrence of two consecutive leading tabs; anything else is
// left alone, so mixed tab-and-space indentation is not repaired.
func unwrapIndent(line string) string {
	if len(line) >= 2 && line[0] == '\t' && line[1] == '\t' {
		return line[2:]
	}
	return line
}
