package domain

import "sort"

// SegmentKind tags a rendered segment.
type SegmentKind int

const (
	SegmentPlain SegmentKind = iota
	SegmentLink
	SegmentMention
)

// Segment is one displayable slice of a post's text. Concatenating the
// Text of all segments in order reproduces the original post text.
type Segment struct {
	Kind SegmentKind
	Text string
	URI  string // Link target, for SegmentLink
	DID  string // Mentioned account, for SegmentMention
}

// RenderSegments maps post text plus its span annotations into an ordered
// segment sequence. Pure function. Spans are re-sorted by start before
// slicing so unsorted server input renders correctly; spans with bounds
// outside the text, inverted, or overlapping the previous span are
// skipped rather than clamped so no byte is emitted twice. Gaps between
// spans come back as plain segments.
func RenderSegments(text string, spans []TextSpan) []Segment {
	if len(spans) == 0 {
		return []Segment{{Kind: SegmentPlain, Text: text}}
	}

	sorted := make([]TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var segs []Segment
	pos := 0
	for _, sp := range sorted {
		if sp.Start < pos || sp.End > len(text) || sp.Start >= sp.End {
			continue
		}
		if sp.Start > pos {
			segs = append(segs, Segment{Kind: SegmentPlain, Text: text[pos:sp.Start]})
		}
		segs = append(segs, Segment{
			Kind: segmentKindFor(sp),
			Text: text[sp.Start:sp.End],
			URI:  sp.URI,
			DID:  sp.DID,
		})
		pos = sp.End
	}
	if pos < len(text) {
		segs = append(segs, Segment{Kind: SegmentPlain, Text: text[pos:]})
	}
	if len(segs) == 0 {
		return []Segment{{Kind: SegmentPlain, Text: text}}
	}
	return segs
}

// segmentKindFor prefers the link feature, then mention, else plain.
func segmentKindFor(sp TextSpan) SegmentKind {
	switch {
	case sp.Kind == SpanLink && sp.URI != "":
		return SegmentLink
	case sp.Kind == SpanMention && sp.DID != "":
		return SegmentMention
	default:
		return SegmentPlain
	}
}
