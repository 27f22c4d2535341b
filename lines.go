package textdiff

// SplitLines splits text on "\r\n", "\r" and "\n" alike. A trailing line
// terminator yields a final empty line, so "a\n" is two lines and "" is one.
func SplitLines(text string) []string {
	lines := make([]string, 0, 1+countTerminators(text))
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, text[start:])
}

func countTerminators(text string) int {
	var n int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	return n
}
