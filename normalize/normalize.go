// Package normalize rewrites informal nicknames and program aliases in a
// user question into the canonical names the index was built on, so
// informally phrased Vietnamese queries still hit the right chunks.
package normalize

import "strings"

// nameMap maps community nicknames to full admin names.
var nameMap = []alias{
	{"anh hưng", "Nguyễn Gia Hưng"},
	{"sư phụ hưng", "Nguyễn Gia Hưng"},
	{"anh thiện", "Lữ Hoàn Thiện"},
	{"anh vĩ", "Trần Đại Vĩ"},
	{"anh long", "Huỳnh Hoàng Long"},
	{"anh quy", "Phạm Hoàng Quy"},
	{"anh việt", "Bùi Hoàng Việt"},
	{"chị thư", "Đặng Thị Minh Thư"},
	{"anh huy", "Lý Kiên Huy"},
	{"anh đạt", "Nguyễn Đỗ Thành Đạt"},
}

// entityMap maps program-name variants to the canonical FCAJ.
var entityMap = []alias{
	{"fcaj", "FCAJ"},
	{"fcj", "FCAJ"},
	{"first cloud journey", "FCAJ"},
	{"first cloud ai journey", "FCAJ"},
}

type alias struct {
	from, to string
}

// Query substitutes every known alias in the question with its canonical
// form. Matching is case-insensitive plain substring matching, one pass
// per alias; it is not word-boundary aware, which matches the behavior
// the index was tuned against. Text outside a match keeps its original
// case, so a query that is already canonical comes back unchanged.
// Never fails.
func Query(question string) string {
	q := question
	for _, a := range nameMap {
		q = replaceFold(q, a.from, a.to)
	}
	for _, a := range entityMap {
		q = replaceFold(q, a.from, a.to)
	}
	return q
}

// replaceFold replaces every case-insensitive occurrence of from in s
// with to, leaving the rest of s untouched.
func replaceFold(s, from, to string) string {
	rs := []rune(s)
	ls := []rune(strings.ToLower(s))
	lf := []rune(strings.ToLower(from))
	if len(ls) != len(rs) || len(lf) == 0 {
		// Lowercasing changed the rune count (does not happen for the
		// Vietnamese and ASCII alphabets the maps use).
		return s
	}

	var b strings.Builder
	for i := 0; i < len(rs); {
		if matchAt(ls, lf, i) {
			b.WriteString(to)
			i += len(lf)
			continue
		}
		b.WriteRune(rs[i])
		i++
	}
	return b.String()
}

func matchAt(s, sub []rune, at int) bool {
	if at+len(sub) > len(s) {
		return false
	}
	for i := range sub {
		if s[at+i] != sub[i] {
			return false
		}
	}
	return true
}

// Aliases returns every alias/canonical pair. Used by tests and by the
// ingest command to report what rewriting is active.
func Aliases() map[string]string {
	m := make(map[string]string, len(nameMap)+len(entityMap))
	for _, a := range nameMap {
		m[a.from] = a.to
	}
	for _, a := range entityMap {
		m[a.from] = a.to
	}
	return m
}
