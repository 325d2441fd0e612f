package leaderboard

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	dateLayout      = "2006-01-02 15:04"
	shortDateLayout = "2006-01-02"
)

// Render formats the board as aligned text lines with a header row. When
// width is positive and the full layout would overflow it, the date column
// falls back to a day-only format.
func Render(board Leaderboard, width int) []string {
	lines := renderWithLayout(board, dateLayout)
	if width > 0 && len(lines) > 0 && displayWidth(lines[0]) > width {
		return renderWithLayout(board, shortDateLayout)
	}
	return lines
}

func renderWithLayout(board Leaderboard, layout string) []string {
	headers := []string{"Rank", "Attempts", "Time", "Difficulty", "Date"}
	rows := make([][]string, 0, len(board))
	for i, score := range board {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", score.Attempts),
			fmt.Sprintf("%.2fs", score.Seconds),
			fmt.Sprintf("%d", score.Difficulty),
			score.Date.Format(layout),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true}
	return formatTable(headers, rows, rightAlign)
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
