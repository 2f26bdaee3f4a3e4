package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/vocabtui/internal/model"
	"github.com/verte-zerg/vocabtui/internal/review"
)

// RenderSummary prints the catalog summary counts.
func RenderSummary(w io.Writer, name string, summary model.Summary) error {
	lines := []string{
		fmt.Sprintf("Catalog: %s", name),
		fmt.Sprintf("Words: %d", summary.Total),
		fmt.Sprintf("Studied: %d (%d%%)", summary.Studied, summary.PctStudied),
		fmt.Sprintf("Known: %d (%d%%)", summary.Known, summary.PctKnown),
		fmt.Sprintf("Due now: %d", summary.Due),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWordTable prints a per-word progress table, truncating the
// translation column to fit the given terminal width.
func RenderWordTable(w io.Writer, active []model.EntryWithProgress, now time.Time, totalWidth int) error {
	if len(active) == 0 {
		_, err := fmt.Fprintln(w, "No words match the current filters.")
		return err
	}
	headers := []string{"Word", "Translation", "Seen", "Streak", "Due", "Flags"}
	rows := make([][]string, 0, len(active))
	for _, item := range active {
		rows = append(rows, []string{
			item.Value,
			truncate(item.Translation, translationWidth(totalWidth)),
			fmt.Sprintf("%d", item.Progress.SeenCount),
			fmt.Sprintf("%d", item.Progress.Streak),
			dueLabel(item.Progress, now),
			flagLabel(item.Progress),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func dueLabel(state model.ProgressState, now time.Time) string {
	if review.Due(state, now) {
		return "due"
	}
	wait := state.NextDue.Sub(now).Round(time.Second)
	return "in " + wait.String()
}

func flagLabel(state model.ProgressState) string {
	var parts []string
	if state.Favorite {
		parts = append(parts, "fav")
	}
	if state.Known {
		parts = append(parts, "known")
	}
	return strings.Join(parts, ",")
}

func translationWidth(totalWidth int) int {
	// Leave room for the fixed-width columns.
	width := totalWidth - 40
	if width < 12 {
		width = 12
	}
	return width
}
