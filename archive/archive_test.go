package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redhour/period"
)

const sampleBody = `
<p>Buenas, ¿cómo va? Adjunto a continuación mi distribución de horas/proyectos del mes Mayo.</p>

<h1>Tiempo Dedicado</h1>
<p>Total de días trabajados: <strong>2 días</strong><br>
Total de horas trabajadas: <strong>8 horas</strong></p>

<h1>Proyectos</h1>
<h2>Alpha [100.0%]</h2>
<p><a href='https://redmine.example.com/issues/101'>Fix &amp; login</a></p><p>• Total de horas: <strong>8h</strong><br>• Porcentaje: <strong>100.0%</strong></p>

<p>Saludos!</p>

<p><img src="cid:firma_digital" alt="Firma Digital" style="max-width: 300px;"></p>
`

func TestToMarkdown(t *testing.T) {
	t.Parallel()

	md := ToMarkdown(sampleBody)

	assert.Contains(t, md, "# Tiempo Dedicado")
	assert.Contains(t, md, "## Alpha [100.0%]")
	assert.Contains(t, md, "Total de días trabajados: **2 días**  \n\nTotal de horas trabajadas: **8 horas**")
	assert.Contains(t, md, "[Fix & login](https://redmine.example.com/issues/101)")
	assert.Contains(t, md, "Saludos!")
	assert.NotContains(t, md, "<img")
	assert.NotContains(t, md, "<p>")
	assert.NotContains(t, md, "\n\n\n")
	assert.Equal(t, md, ToMarkdown(sampleBody))
}

func TestToMarkdown_DoubleQuotedLinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[Docs](https://example.com/a?b=1&c=2)", ToMarkdown(`<a href="https://example.com/a?b=1&amp;c=2">Docs</a>`))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := Write(dir, period.Context{Year: "2024", Month: "05"}, Header{
		To:      "Boss <boss@example.com>",
		Cc:      "team@example.com",
		Subject: "Imputación Horas/Proyecto - Mayo 2024",
	}, "<h1>Tiempo Dedicado</h1>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024", "05_mail_redmine.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"**Para:** Boss <boss@example.com>\n**CC:** team@example.com\n**Asunto:** Imputación Horas/Proyecto - Mayo 2024\n\n# Tiempo Dedicado",
		string(content),
	)
}
