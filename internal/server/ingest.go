package server

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Palash-creator/gem-extract/pkg/extract"
)

// readDocuments decodes every uploaded "documents" file into a Document.
func (s *Server) readDocuments(r *http.Request) ([]extract.Document, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["documents"]
	docs := make([]extract.Document, 0, len(files))

	for _, fh := range files {
		doc, err := readDocument(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// readDocument reads one uploaded file. HTML uploads are reduced to their
// visible text; everything else is treated as plain text.
func readDocument(fh *multipart.FileHeader) (extract.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return extract.Document{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return extract.Document{}, err
	}

	name := fh.Filename
	if name == "" {
		name = extract.DefaultDocumentName
	}

	text := string(data)
	if isHTML(name) {
		if stripped, err := htmlToText(data); err == nil {
			text = stripped
		}
	}

	return extract.Document{Name: name, Text: text}, nil
}

func isHTML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// htmlToText extracts the visible text from an HTML document, dropping
// scripts and styles.
func htmlToText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return strings.TrimSpace(text), nil
}
