package veolink

import (
	"fmt"
	"strings"
)

// Tag is one of the bracketed line markers that every full_prompt block is
// contracted to contain, in order, exactly once each. Renderers key the
// per-line treatment off these names, so the spelling is load-bearing.
type Tag string

const (
	TagComplianceNotice Tag = "COMPLIANCE NOTICE"
	TagCharacter        Tag = "CHARACTER"
	TagProductLock      Tag = "PRODUCT_LOCK"
	TagScene            Tag = "SCENE"
	TagPosture          Tag = "POSTURE"
	TagAction           Tag = "ACTION"
	TagDialogue         Tag = "DIALOGUE"
)

// TagOrder is the required line order inside a full_prompt block.
var TagOrder = []Tag{
	TagComplianceNotice,
	TagCharacter,
	TagProductLock,
	TagScene,
	TagPosture,
	TagAction,
	TagDialogue,
}

// TagLine is one parsed `[TAG]: content` line.
type TagLine struct {
	Tag     Tag
	Content string
}

// ParsePromptBlock splits a full_prompt block into its tag lines. Lines that
// do not carry a known tag are skipped; duplicate or out-of-order tags are
// reported, since downstream rendering relies on the fixed sequence.
func ParsePromptBlock(block string) ([]TagLine, error) {
	var lines []TagLine
	next := 0
	for _, raw := range strings.Split(block, "\n") {
		raw = strings.TrimSpace(raw)
		tag, content, ok := splitTagLine(raw)
		if !ok {
			continue
		}
		pos := tagPosition(tag)
		if pos < 0 {
			continue
		}
		if pos < next {
			return lines, fmt.Errorf("tag [%s] duplicated or out of order", tag)
		}
		if pos > next {
			return lines, fmt.Errorf("tag [%s] missing before [%s]", TagOrder[next], tag)
		}
		lines = append(lines, TagLine{Tag: tag, Content: content})
		next++
	}
	if next != len(TagOrder) {
		return lines, fmt.Errorf("tag [%s] missing", TagOrder[next])
	}
	return lines, nil
}

// WellFormedPromptBlock reports whether the block satisfies the full 7-tag
// contract. The reconciler deliberately does not enforce this; it is used
// by rendering and by tests.
func WellFormedPromptBlock(block string) bool {
	_, err := ParsePromptBlock(block)
	return err == nil
}

func splitTagLine(line string) (Tag, string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", "", false
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return "", "", false
	}
	rest := strings.TrimSpace(line[end+1:])
	rest = strings.TrimPrefix(rest, ":")
	return Tag(line[1:end]), strings.TrimSpace(rest), true
}

func tagPosition(tag Tag) int {
	for i, t := range TagOrder {
		if t == tag {
			return i
		}
	}
	return -1
}
