package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUploadPlainText(t *testing.T) {
	res, err := FromUpload("notes.txt", []byte("hello document"))

	assert.NoError(t, err)
	assert.Equal(t, "hello document", res.Text)
	assert.Equal(t, 1, res.PageCount)
}

func TestFromUploadMarkdown(t *testing.T) {
	res, err := FromUpload("README.md", []byte("# Title\n\nbody"))

	assert.NoError(t, err)
	assert.Contains(t, res.Text, "# Title")
}

func TestFromUploadUnsupportedExtension(t *testing.T) {
	_, err := FromUpload("slides.pptx", []byte("binary"))

	assert.Error(t, err)
}

func TestFromUploadInvalidUTF8(t *testing.T) {
	_, err := FromUpload("notes.txt", []byte{0xff, 0xfe, 0xfd})

	assert.Error(t, err)
}

func TestFromUploadBrokenPDF(t *testing.T) {
	_, err := FromUpload("report.pdf", []byte("not really a pdf"))

	assert.Error(t, err)
}
