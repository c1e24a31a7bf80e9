package services

import (
	"io"
	"strconv"
	"strings"

	"postfeed/app/models"
)

const (
	authorLabel   = "Автор: "
	postLabel     = "Пост: "
	commentsLabel = "Комментарии:"
)

// Report renders the enriched posts as plain text. Each record is the
// author name, the post content and, if there are any, the numbered
// comments, followed by a blank line.
func Report(enriched []models.EnrichedPost) string {
	var b strings.Builder
	for _, e := range enriched {
		b.WriteString(authorLabel)
		b.WriteString(e.Author.Name)
		b.WriteByte('\n')
		b.WriteString(postLabel)
		b.WriteString(e.Post.Content)
		b.WriteByte('\n')
		if e.HasComments() {
			b.WriteString(commentsLabel)
			b.WriteByte('\n')
			for i, c := range e.Comments {
				b.WriteString(strconv.Itoa(i + 1))
				b.WriteString(": ")
				b.WriteString(c.Content)
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteReport writes the report of enriched to w.
func WriteReport(w io.Writer, enriched []models.EnrichedPost) error {
	_, err := io.WriteString(w, Report(enriched))
	return err
}
