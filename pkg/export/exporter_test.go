package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course", "Grade"},
		Rows: []map[string]string{
			{"Course": "HS1 Algebra 1", "Grade": "98"},
			{"Course": "HS1 Art 1", "Grade": "72"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course,Grade", strings.TrimSpace(lines[0]))
	assert.Equal(t, "HS1 Algebra 1,98", strings.TrimSpace(lines[1]))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course", "Grade"},
		Rows:    []map[string]string{{"Course": "HS1 Algebra 1", "Grade": "98"}},
	}

	out, err := NewPDFExporter().Render(data, "Report Card", "John Appleseed")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
