package segment

import (
	"fmt"

	"github.com/npillmayer/multiscript/core/script"
)

// Segment is a run of text in a single script. Start and End are byte
// offsets into the segmented string.
type Segment struct {
	Text   string
	Script script.Tag
	Start  int
	End    int
}

func (seg Segment) String() string {
	return fmt.Sprintf("[%s:%d-%d %q]", seg.Script, seg.Start, seg.End, seg.Text)
}

// runBuilder collects segments while clusters are fed in.
type runBuilder struct {
	text     string
	segments []Segment
	pending  []script.Cluster // common clusters not yet assigned to a run
}

func (rb *runBuilder) current() *Segment {
	if len(rb.segments) == 0 {
		return nil
	}
	return &rb.segments[len(rb.segments)-1]
}

// extendTo lets the current run end at byte offset end, starting a Latin run
// if there is none yet.
func (rb *runBuilder) extendTo(end int) {
	cur := rb.current()
	if cur == nil {
		if end == 0 {
			return
		}
		rb.segments = append(rb.segments, Segment{Script: script.Latin, Start: 0, End: end})
		return
	}
	cur.End = end
}

func (rb *runBuilder) start(tag script.Tag, start int) {
	rb.segments = append(rb.segments, Segment{Script: tag, Start: start, End: start})
}

// trailingSpace returns the index into pending where its trailing whitespace
// starts.
func (rb *runBuilder) trailingSpace() int {
	i := len(rb.pending)
	for i > 0 && rb.pending[i-1].IsSpace() {
		i--
	}
	return i
}

func (rb *runBuilder) strong(c script.Cluster, tag script.Tag) {
	cur := rb.current()
	if cur != nil && cur.Script == tag {
		cur.End = c.End
		rb.pending = rb.pending[:0]
		return
	}
	if cur == nil && tag == script.Latin {
		rb.start(tag, 0)
		rb.current().End = c.End
		rb.pending = rb.pending[:0]
		return
	}
	start := c.Start
	if ws := rb.trailingSpace(); ws < len(rb.pending) {
		start = rb.pending[ws].Start
	}
	rb.extendTo(start)
	rb.start(tag, start)
	rb.current().End = c.End
	rb.pending = rb.pending[:0]
}

func (rb *runBuilder) finish() []Segment {
	if len(rb.pending) > 0 {
		rb.extendTo(len(rb.text))
	}
	for i := range rb.segments {
		seg := &rb.segments[i]
		seg.Text = rb.text[seg.Start:seg.End]
	}
	return rb.segments
}

// Split splits a string into maximal runs of a single script. It is a
// pure function of the code-points of clean; the result is deterministic.
func Split(clean string) []Segment {
	rb := &runBuilder{text: clean}
	for _, c := range script.Clusters(clean) {
		base := c.Base()
		if script.IsCommon(base) || script.IsInherited(base) {
			rb.pending = append(rb.pending, c)
			continue
		}
		rb.strong(c, c.Tag())
	}
	segments := rb.finish()
	tracer().Debugf("segmented %q into %d runs", clean, len(segments))
	return segments
}

// Scripts returns the set of script tags occurring in a list of segments,
// in order of first occurrence.
func Scripts(segments []Segment) []script.Tag {
	var tags []script.Tag
	seen := make(map[script.Tag]bool)
	for _, seg := range segments {
		if !seen[seg.Script] {
			seen[seg.Script] = true
			tags = append(tags, seg.Script)
		}
	}
	return tags
}
