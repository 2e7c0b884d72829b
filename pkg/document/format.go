package document

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Format is an input text format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name or media type. An empty
// name means auto-detect and returns "".
func ParseFormat(s string) (Format, error) {
	if strings.Contains(s, "/") {
		if f := ClassifyContentType(s); f != "" {
			return f, nil
		}
		return "", fmt.Errorf("unsupported media type: %q", s)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "json", "ndjson", "jsonl":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %q (valid: json, yaml)", s)
	}
}

// ClassifyContentType maps a media type to a format. Parameters such as
// charset are ignored. Unknown media types return "".
func ClassifyContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case strings.Contains(mediaType, "json"):
		return FormatJSON
	case strings.Contains(mediaType, "yaml"):
		return FormatYAML
	default:
		return ""
	}
}

var utf8BOM = []byte("\xef\xbb\xbf")

// DetectFormat picks a format from the file name, falling back to sniffing
// the first significant byte of data.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".ndjson", ".jsonl":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(trimmed) == 0 {
		return FormatJSON
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return FormatJSON
	}
	return FormatYAML
}

// Decode decodes data in the given format, detecting it when format is "".
// JSON input may hold several concatenated values; each is one sample.
func Decode(name string, data []byte, format Format) ([]any, error) {
	if format == "" {
		format = DetectFormat(name, data)
	}
	switch format {
	case FormatJSON:
		return DecodeJSONStream(bytes.NewReader(data))
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}
