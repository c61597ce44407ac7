package model

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Slug is the URL form of a term name. Non-ASCII letters are transliterated.
func Slug(s string) string {
	return slug.Make(s)
}

// TermLink is the archive permalink of a taxonomy term.
func TermLink(taxonomy, term string) string {
	return fmt.Sprintf("/%s/%s/", taxonomy, Slug(term))
}
