// Package smartsort forwards a course outline and its videos to an external
// ordering service.
package smartsort

import (
	"bytes"
	"encoding/json"
	"fmt"

	"video-quiz/internal/domain"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// VideoItem is the canonical form sent to the sorting service. Absent fields
// encode as null.
type VideoItem struct {
	Title         mo.Option[string] `json:"title"`
	Description   mo.Option[string] `json:"description"`
	Transcription mo.Option[string] `json:"transcription"`
}

// Item is one accepted input shape. It is implemented only by MappingForm,
// TripleForm and RecordForm.
type Item interface {
	Canonical() VideoItem
	isItem()
}

// MappingForm is {"title", "description", "transcription"}.
type MappingForm struct {
	Title         mo.Option[string] `json:"title"`
	Description   mo.Option[string] `json:"description"`
	Transcription mo.Option[string] `json:"transcription"`
}

// TripleForm is [title, description, transcription].
type TripleForm [3]mo.Option[string]

// RecordForm is a resolved media record, as returned by /processdata.
type RecordForm struct {
	Record domain.MediaRecord
}

func (m MappingForm) Canonical() VideoItem {
	return VideoItem{Title: m.Title, Description: m.Description, Transcription: m.Transcription}
}

func (t TripleForm) Canonical() VideoItem {
	return VideoItem{Title: t[0], Description: t[1], Transcription: t[2]}
}

func (r RecordForm) Canonical() VideoItem {
	return VideoItem{
		Title:         mo.PointerToOption(r.Record.Title),
		Description:   mo.PointerToOption(r.Record.Description),
		Transcription: mo.Some(r.Record.Transcript),
	}
}

func (MappingForm) isItem() {}
func (TripleForm) isItem()  {}
func (RecordForm) isItem()  {}

// DecodeItem resolves one raw video into its form. An object carrying
// "transcript" is a media record; any other object is a mapping. Arrays must
// hold exactly three strings or nulls.
func DecodeItem(index int, raw json.RawMessage) (Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, domain.NewUnsupportedItemShapeError(index, "empty value")
	}

	switch trimmed[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, domain.NewUnsupportedItemShapeError(index, err.Error())
		}
		if _, isRecord := fields["transcript"]; isRecord {
			var record domain.MediaRecord
			if err := json.Unmarshal(trimmed, &record); err != nil {
				return nil, domain.NewUnsupportedItemShapeError(index, "media record: "+err.Error())
			}
			return RecordForm{Record: record}, nil
		}
		var m MappingForm
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, domain.NewUnsupportedItemShapeError(index, "mapping: "+err.Error())
		}
		return m, nil

	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, domain.NewUnsupportedItemShapeError(index, err.Error())
		}
		if len(elems) != 3 {
			return nil, domain.NewUnsupportedItemShapeError(index,
				fmt.Sprintf("array videos must have exactly 3 elements (title, description, transcription), got %d", len(elems)))
		}
		var t TripleForm
		for i, elem := range elems {
			if err := json.Unmarshal(elem, &t[i]); err != nil {
				return nil, domain.NewUnsupportedItemShapeError(index, fmt.Sprintf("element %d must be a string or null", i))
			}
		}
		return t, nil
	}

	return nil, domain.NewUnsupportedItemShapeError(index, "expected an object or an array")
}

// DecodeItems decodes every video, failing on the first rejected one.
func DecodeItems(raws []json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		item, err := DecodeItem(i, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Canonicalize maps items to the form sent upstream.
func Canonicalize(items []Item) []VideoItem {
	return lo.Map(items, func(item Item, _ int) VideoItem {
		return item.Canonical()
	})
}
