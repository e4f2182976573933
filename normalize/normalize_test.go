package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryRewritesEveryAlias(t *testing.T) {
	for from, to := range Aliases() {
		got := Query("cho mình hỏi về " + from + " nhé")
		assert.Contains(t, got, to, "alias %q", from)
		if !strings.Contains(strings.ToLower(to), from) {
			assert.NotContains(t, got, from, "alias %q should be gone", from)
		}
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	got := Query("Anh Thiện là ai?")
	assert.Contains(t, got, "Lữ Hoàn Thiện")

	got = Query("FCJ có quy định gì?")
	assert.Contains(t, got, "FCAJ")
}

func TestQueryEntityUppercased(t *testing.T) {
	got := Query("fcaj là gì?")
	assert.Equal(t, "FCAJ là gì?", got)
}

func TestQueryIdempotent(t *testing.T) {
	q := Query("anh thiện và fcj")
	assert.Equal(t, "Lữ Hoàn Thiện và FCAJ", q)
	assert.Equal(t, q, Query(q))
}

func TestQueryNoAliasUnchanged(t *testing.T) {
	q := "EC2 và VPC khác nhau thế nào"
	assert.Equal(t, q, Query(q))
}

func TestQueryNotWordBoundaryAware(t *testing.T) {
	// Substring matching is deliberate: "fcj" inside a longer token is
	// still replaced.
	got := Query("xfcjy")
	assert.Equal(t, "xFCAJy", got)
}
