package postal

// AppendEscaped appends src to dst escaped for direct inclusion inside a
// double-quoted JSON string literal, and returns the extended buffer.
//
// Seven bytes are rewritten as two-byte escape sequences; every other byte
// is copied unchanged, so multi-byte UTF-8 sequences pass through
// byte-for-byte. Output grows by at most 2*len(src).
func AppendEscaped(dst, src []byte) []byte {
	for _, ch := range src {
		switch ch {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '"':
			dst = append(dst, '\\', '"')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, ch)
		}
	}
	return dst
}

// appendQuoted appends s as a complete double-quoted JSON string.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = AppendEscaped(dst, []byte(s))
	return append(dst, '"')
}
