package driver

// CommentSpan is the half-open byte range of one doc comment in a file,
// including its "/**" and "*/" markers.
type CommentSpan struct {
	Start int
	End   int
}

// FindDocComments locates every "/** ... */" comment in content, skipping
// string and character literals, line comments, and plain block comments.
// An unterminated comment is malformed input: scanning stops and the tail
// of the file is left untouched.
func FindDocComments(content []byte) []CommentSpan {
	var spans []CommentSpan
	i := 0
	for i < len(content) {
		switch content[i] {
		case '"', '\'':
			i = skipLiteral(content, i)
		case '/':
			if i+1 >= len(content) {
				return spans
			}
			switch content[i+1] {
			case '/':
				i = skipLine(content, i)
			case '*':
				start := i
				isDoc := i+2 < len(content) && content[i+2] == '*' &&
					// "/**/" is an empty plain comment, not a doc comment.
					(i+3 >= len(content) || content[i+3] != '/')
				end, ok := skipBlockComment(content, i)
				if !ok {
					return spans
				}
				if isDoc {
					spans = append(spans, CommentSpan{Start: start, End: end})
				}
				i = end
			default:
				i++
			}
		default:
			i++
		}
	}
	return spans
}

func skipLine(content []byte, pos int) int {
	for pos < len(content) && content[pos] != '\n' {
		pos++
	}
	return pos
}

// skipBlockComment returns the offset just past the closing "*/", or
// ok=false when the comment never terminates.
func skipBlockComment(content []byte, pos int) (int, bool) {
	for i := pos + 2; i+1 < len(content); i++ {
		if content[i] == '*' && content[i+1] == '/' {
			return i + 2, true
		}
	}
	return 0, false
}

// skipLiteral returns the position just past the closing quote, honoring
// backslash escapes. An unterminated literal runs to its line's end.
func skipLiteral(content []byte, start int) int {
	quote := content[start]
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(content)
}
