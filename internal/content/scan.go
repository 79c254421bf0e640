package content

// splitObjects cuts a blob that is a sequence of concatenated top-level
// JSON objects into the individual object substrings. The meanings file is
// hand-assembled and is deliberately allowed to not be one well-formed
// document.
//
// The scanner walks the text byte-by-byte tracking brace nesting depth and
// quoted-string state (honoring backslash escapes, so a '"' or brace inside
// a string is not mistaken for structure). Each maximal span whose depth
// returns to zero after having opened is one candidate object. Candidates
// are not validated here; each is parsed independently by the loader.
func splitObjects(raw []byte) [][]byte {
	var objects [][]byte

	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				// Stray closer outside any object; ignore.
				continue
			}
			depth--
			if depth == 0 {
				objects = append(objects, raw[start:i+1])
				start = -1
			}
		}
	}

	// A trailing unclosed object (truncated file) is still a candidate so
	// the loader can report it as a parse failure instead of dropping it
	// silently.
	if depth > 0 && start >= 0 {
		objects = append(objects, raw[start:])
	}

	return objects
}
