// Package extract turns noisy recognized text into a recipe title and body.
package extract

import "strings"

// BodyMarker separates OCR text from page text in a combined payload.
const BodyMarker = "{{BODY}}"

// Result is the title and body derived from one payload.
type Result struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SplitPayload splits a combined payload into its OCR part and its page
// part. Without a marker the whole payload is OCR text.
func SplitPayload(payload string) (ocrText, pageText string) {
	idx := strings.Index(payload, BodyMarker)
	if idx < 0 {
		return payload, ""
	}
	ocrText = strings.TrimSuffix(payload[:idx], "\n\n")
	pageText = payload[idx+len(BodyMarker):]
	return ocrText, pageText
}

// JoinPayload builds the combined payload. An empty page part yields the
// OCR text alone.
func JoinPayload(ocrText, pageText string) string {
	if pageText == "" {
		return ocrText
	}
	return ocrText + "\n\n" + BodyMarker + pageText
}

// Process runs the caption extractor over the OCR part and the body cleaner
// over the page part of payload.
func Process(payload string) Result {
	ocrText, pageText := SplitPayload(payload)
	return Result{
		Title: ExtractCaption(ocrText),
		Body:  CleanBodyText(pageText),
	}
}
