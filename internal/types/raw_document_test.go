package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawDocument(t *testing.T) {
	doc, err := NewRawDocument("Jane Roe\r\njane@roe.dev\rAustin\n", "TXT")
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane Roe", "jane@roe.dev", "Austin", ""}, doc.Lines())
	assert.Equal(t, 4, doc.LineCount())
	assert.Equal(t, FormatText, doc.Format())
	assert.False(t, doc.IsBlank())

	lines := doc.Lines()
	lines[0] = "changed"
	assert.Equal(t, "Jane Roe", doc.Lines()[0], "Lines returns a copy")
}

func TestNewRawDocument_Blank(t *testing.T) {
	doc, err := NewRawDocument(" \n\t\n", "md")
	require.NoError(t, err)
	assert.True(t, doc.IsBlank())
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{".md", FormatMarkdown, false},
		{"Markdown", FormatMarkdown, false},
		{"htm", FormatHTML, false},
		{"PDF", FormatPDF, false},
		{"docx", FormatDOCX, false},
		{"rtf", "", true},
		{"odt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeFormat(tt.in)
			if tt.wantErr {
				var formatErr *UnsupportedFormatError
				require.True(t, errors.As(err, &formatErr))
				assert.Equal(t, tt.in, formatErr.Format)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortWarnings(t *testing.T) {
	ws := []Warning{
		{Code: WarningMalformedField, Field: "contact.phone", Message: "b"},
		{Code: WarningUnparsedSection, Field: "HOBBIES", Message: "x"},
		{Code: WarningMalformedField, Field: "contact.email", Message: "a"},
		{Code: WarningMissingName, Message: "no name"},
	}
	SortWarnings(ws)

	codes := make([]string, len(ws))
	for i, w := range ws {
		codes[i] = string(w.Code) + ":" + w.Field
	}
	assert.Equal(t, []string{
		"missing_name:",
		"unparsed_section:HOBBIES",
		"malformed_field:contact.email",
		"malformed_field:contact.phone",
	}, codes)

	assert.Equal(t, KindMissingRequiredField, ws[0].Kind())
	assert.Equal(t, KindUnparsedSection, ws[1].Kind())
	assert.Equal(t, KindMalformedField, ws[2].Kind())
	assert.True(t, HasWarning(ws, WarningUnparsedSection))
	assert.False(t, HasWarning(ws, WarningNoEducationFound))
}
