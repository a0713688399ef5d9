package extraction

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"code.sajari.com/docconv"

	"github.com/lexhub-io/lexhub/internal/models"
)

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocxExtractor parses Word documents with docconv. Parser complaints (for
// example unsupported embedded elements) become metadata warnings rather
// than failures.
type DocxExtractor struct{}

func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Extract(ctx context.Context, data []byte) Result {
	res, err := docconv.Convert(bytes.NewReader(data), docxMimeType, false)
	if err != nil {
		log.Printf("DocxExtractor: conversion failed: %v", err)
		return degraded(models.FormatDocx, fmt.Sprintf("docx parsing failed: %v", err))
	}

	meta := NewMetadata(res.Body, models.FormatDocx)
	meta.ExtractionMethod = "docconv"
	if res.Error != "" {
		meta.Warnings = append(meta.Warnings, res.Error)
	}
	return Result{Text: res.Body, Metadata: meta}
}
