// Package tui provides the Bubble Tea study interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText word-wraps plain text to the given display width, breaking
// overlong words at the width boundary.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return strings.Join(lines, "\n")
}

func wrapParagraph(paragraph string, width int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var current strings.Builder
	currentWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth > 0 && currentWidth+1+wordWidth > width {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		if wordWidth > width {
			for _, part := range breakWord(word, width) {
				if currentWidth > 0 {
					lines = append(lines, current.String())
					current.Reset()
					currentWidth = 0
				}
				current.WriteString(part)
				currentWidth = runewidth.StringWidth(part)
				if currentWidth == width {
					lines = append(lines, current.String())
					current.Reset()
					currentWidth = 0
				}
			}
			continue
		}
		if currentWidth > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += wordWidth
	}
	if currentWidth > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

func breakWord(word string, width int) []string {
	var parts []string
	var current strings.Builder
	currentWidth := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width && currentWidth > 0 {
			parts = append(parts, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(r)
		currentWidth += rw
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
