package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jongubooks/pkg/schema"
)

func TestPDFRendersBooklet(t *testing.T) {
	story := schema.Story{
		Title:  "The Lost Acorn",
		Author: "Anonymous",
		Lesson: "Sharing makes everything better.",
		Pages: []schema.Page{
			{PageNumber: 1, Text: "Pip the squirrel found a shiny acorn."},
			{PageNumber: 2, Text: "He wondered whether to share it."},
		},
	}

	data, err := PDF(story)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFWithNoPages(t *testing.T) {
	data, err := PDF(schema.Story{Title: "Untitled"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
