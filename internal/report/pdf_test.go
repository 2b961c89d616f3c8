package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bottomline-assist/talent-matcher/internal/models"
)

func TestRenderWritesPDF(t *testing.T) {
	dir := t.TempDir()
	renderer := NewPDFRenderer(dir, zaptest.NewLogger(t))

	path, err := renderer.Render(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `^evaluation_report_\d{8}_\d{6}\.pdf$`, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderEmptyReport(t *testing.T) {
	renderer := NewPDFRenderer(t.TempDir(), zaptest.NewLogger(t))

	doc := &models.Document{
		Header: models.Header{
			Role:             "Backend Engineer",
			Company:          "Acme",
			ReportDate:       "21 August 2026",
			AssessmentMethod: "AI-assisted evaluation.",
		},
		OverallSummary: "No candidates were evaluated.",
	}

	path, err := renderer.Render(doc)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderWithLogo(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 0, G: 4, B: 53, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	logoPath := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logoPath, buf.Bytes(), 0o644))

	renderer := NewPDFRenderer(dir, zaptest.NewLogger(t))
	renderer.LogoPath = logoPath

	path, err := renderer.Render(sampleDocument())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderIgnoresUnreadableLogo(t *testing.T) {
	dir := t.TempDir()

	logoPath := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logoPath, []byte("not a png at all"), 0o644))

	renderer := NewPDFRenderer(dir, zaptest.NewLogger(t))
	renderer.LogoPath = logoPath

	path, err := renderer.Render(sampleDocument())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderFailsWhenOutputDirMissing(t *testing.T) {
	renderer := NewPDFRenderer(filepath.Join(t.TempDir(), "missing"), zaptest.NewLogger(t))

	_, err := renderer.Render(sampleDocument())
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Path, "evaluation_report_")
}
