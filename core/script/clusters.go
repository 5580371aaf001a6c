package script

import (
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

var graphemeClassesSetup sync.Once

// Cluster is a grapheme cluster within a string. Start and End are byte
// offsets into the string.
type Cluster struct {
	Text       string
	Start, End int
}

// Base returns the first code-point of the cluster.
func (c Cluster) Base() rune {
	for _, r := range c.Text {
		return r
	}
	return 0
}

// Tag classifies a cluster by its base character.
func (c Cluster) Tag() Tag {
	return Of(c.Base())
}

// IsCommon is true if the cluster's base character is a common code-point.
func (c Cluster) IsCommon() bool {
	return IsCommon(c.Base())
}

// IsSpace is true if the cluster consists of whitespace only.
func (c Cluster) IsSpace() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Clusters splits s into grapheme clusters, following UAX#29. The clusters
// partition s: concatenating their texts reproduces s.
func Clusters(s string) []Cluster {
	if s == "" {
		return nil
	}
	graphemeClassesSetup.Do(func() {
		grapheme.SetupGraphemeClasses()
	})
	// segmenters carry state, so every call gets its own
	splitter := segment.NewSegmenter(grapheme.NewBreaker(1))
	splitter.Init(strings.NewReader(s))
	clusters := make([]Cluster, 0, len(s))
	pos := 0
	for splitter.Next() {
		text := string(splitter.Bytes())
		if text == "" {
			continue
		}
		clusters = append(clusters, Cluster{Text: text, Start: pos, End: pos + len(text)})
		pos += len(text)
	}
	if pos != len(s) { // breaker stopped early; keep the partition intact
		tracer().Errorf("grapheme breaker stopped at %d of %d bytes", pos, len(s))
		clusters = append(clusters, Cluster{Text: s[pos:], Start: pos, End: len(s)})
	}
	return clusters
}
