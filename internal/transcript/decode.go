// Package transcript turns subtitle payloads into plain text.
package transcript

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

// Subtitle formats yt-dlp lists for a track.
const (
	FormatJSON3 = "json3"
	FormatVTT   = "vtt"
	FormatSRT   = "srt"
	FormatSRV1  = "srv1"
	FormatSRV2  = "srv2"
	FormatSRV3  = "srv3"
	FormatTTML  = "ttml"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Decode converts payload in the given format to one caption line per row.
// Unknown formats are returned unchanged. Consecutive duplicate lines, which
// rolling auto-captions produce, are collapsed.
func Decode(ext string, payload []byte) (string, error) {
	var (
		lines []string
		err   error
	)
	switch strings.ToLower(ext) {
	case FormatJSON3:
		lines, err = decodeJSON3(payload)
	case FormatVTT, FormatSRT:
		lines = decodeCues(payload)
	case FormatSRV1, FormatSRV2, FormatSRV3, FormatTTML:
		lines, err = decodeXML(payload)
	default:
		return strings.TrimSpace(string(payload)), nil
	}
	if err != nil {
		return "", fmt.Errorf("decode %s subtitles: %w", ext, err)
	}
	return strings.Join(dedupe(lines), "\n"), nil
}

type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func decodeJSON3(payload []byte) ([]string, error) {
	var doc json3Doc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(doc.Events))
	for _, ev := range doc.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		if line := cleanLine(b.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// decodeCues handles WebVTT and SubRip: timing lines, cue numbers, headers and
// NOTE/STYLE/REGION blocks are dropped.
func decodeCues(payload []byte) []string {
	raw := strings.ReplaceAll(string(payload), "\r\n", "\n")
	raw = strings.TrimPrefix(raw, "\ufeff")

	var lines []string
	skipBlock := false
	rows := strings.Split(raw, "\n")
	for i, line := range rows {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			skipBlock = false
			continue
		case skipBlock:
			continue
		case strings.HasPrefix(trimmed, "WEBVTT"),
			strings.HasPrefix(trimmed, "NOTE"),
			strings.HasPrefix(trimmed, "STYLE"),
			strings.HasPrefix(trimmed, "REGION"):
			skipBlock = true
			continue
		case strings.Contains(trimmed, "-->"):
			continue
		case isCueNumber(trimmed) && i+1 < len(rows) && strings.Contains(rows[i+1], "-->"):
			continue
		}
		if text := cleanLine(tagPattern.ReplaceAllString(trimmed, "")); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// decodeXML reads the text of <text> (srv1), <p> (srv2, srv3, ttml) elements.
func decodeXML(payload []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(payload))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var (
		lines []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if line := cleanLine(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "text", "p":
				depth++
			case "br":
				cur.WriteByte(' ')
			}
		case xml.EndElement:
			if (t.Name.Local == "text" || t.Name.Local == "p") && depth > 0 {
				depth--
				if depth == 0 {
					flush()
				}
			}
		case xml.CharData:
			if depth > 0 {
				cur.Write(t)
			}
		}
	}
	return lines, nil
}

func cleanLine(s string) string {
	// srv1 payloads are escaped twice.
	s = html.UnescapeString(html.UnescapeString(s))
	return strings.Join(strings.Fields(s), " ")
}

func isCueNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func dedupe(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && line == lines[i-1] {
			continue
		}
		out = append(out, line)
	}
	return out
}
