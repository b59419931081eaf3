package chat

import (
	"fmt"
	"strings"

	"github.com/colonyops/taskloop/internal/core/task"
)

// MaxMessageLen caps outbound message size. Telegram rejects messages over
// 4096 characters; 3500 leaves headroom for markup added by the transport.
const MaxMessageLen = 3500

// timeLayout renders scheduled times the same way users enter them.
const timeLayout = "2006-01-02 15:04"

// FormatTaskLine renders one task as it appears in a listing. Position is
// the task's 1-based place in the user's current sequence.
func FormatTaskLine(position int, t task.Task) string {
	when := "unscheduled"
	if t.Scheduled() {
		when = t.ScheduledAt.Format(timeLayout)
	}

	return fmt.Sprintf("%d. %s\n🕒 %s\n🎯 %s\n📌 %s\n\n", position, t.Name, when, t.Priority, t.Status)
}

// FormatTaskList renders tasks as a sequence of messages, each within
// MaxMessageLen. Lines are never split across messages.
func FormatTaskList(tasks []task.Task) []string {
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, FormatTaskLine(i+1, t))
	}
	return chunkLines(lines, MaxMessageLen)
}

// chunkLines packs lines into messages of at most max characters. A single
// line longer than max becomes its own message rather than being split.
func chunkLines(lines []string, max int) []string {
	var chunks []string
	var current strings.Builder

	for _, line := range lines {
		if current.Len() > 0 && current.Len()+len(line) > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
