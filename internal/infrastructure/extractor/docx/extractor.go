package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

// Extractor pulls paragraph text from .docx files in document order, each
// paragraph followed by a line break.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()

		var doc documentXML
		if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		return doc.text(), nil
	}
	return "", fmt.Errorf("docx archive has no word/document.xml")
}

type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

func (d documentXML) text() string {
	var b strings.Builder
	for _, para := range d.Body.Paragraphs {
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
