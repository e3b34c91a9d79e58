package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/AngelCh415/landing-insights/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// InferFileType guesses the kind from the file extension, then the MIME
// type. Unknown inputs are treated as csv.
func InferFileType(name, mime string) models.FileType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return models.FileCSV
	case ".tsv", ".tab":
		return models.FileTSV
	case ".xlsx", ".xls", ".xlsm":
		return models.FileExcel
	case ".css":
		return models.FileCSS
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
		return models.FileImage
	}
	mime = strings.ToLower(mime)
	switch {
	case strings.HasPrefix(mime, "image/"):
		return models.FileImage
	case mime == "text/css":
		return models.FileCSS
	case mime == "text/tab-separated-values":
		return models.FileTSV
	case strings.Contains(mime, "spreadsheet") || strings.Contains(mime, "ms-excel"):
		return models.FileExcel
	}
	return models.FileCSV
}

// DecodeContent undoes the base64 transport encoding, with or without a
// data URL prefix and padding.
func DecodeContent(encoded string) ([]byte, error) {
	s := strings.TrimSpace(encoded)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return b, nil
}

// ReadTable turns raw file bytes into a table. Delimited text goes through
// Parse; spreadsheet cells go straight to FromRecords.
func ReadTable(content []byte, ft models.FileType) (*Table, error) {
	if ft == models.FileExcel {
		if len(bytes.TrimSpace(content)) == 0 {
			return nil, ErrEmptyContent
		}
		rows, err := ExcelRows(content)
		if err != nil {
			return nil, err
		}
		return FromRecords(rows), nil
	}
	text, err := ReadText(content, ft)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}

// ReadText validates delimited text. Spreadsheets are not text (see
// ReadTable); css and images are not tabular.
func ReadText(content []byte, ft models.FileType) (string, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return "", ErrEmptyContent
	}
	switch ft {
	case models.FileExcel, models.FileCSS, models.FileImage:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, ft)
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return "", ErrNotText
	}
	return string(content), nil
}
