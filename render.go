package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/shoal/internal/mediastore"
	"github.com/llehouerou/shoal/internal/music"
)

// maxExamples is the number of example paths shown per scan category.
const maxExamples = 3

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	updatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	labelStyle   = lipgloss.NewStyle().Width(10)
)

func renderScan(stats *mediastore.ScanStats) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Index Scan Complete"))
	sb.WriteString("\n\n")

	sources := make([]string, 0, len(stats.BySource))
	for src := range stats.BySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var totalAdded, totalRemoved, totalUpdated int
	for i, src := range sources {
		if i > 0 {
			sb.WriteString("\n")
		}
		s := stats.BySource[src]
		totalAdded += len(s.Added)
		totalRemoved += len(s.Removed)
		totalUpdated += len(s.Updated)

		sb.WriteString(boldStyle.Render(src))
		sb.WriteString("\n")
		if len(s.Added)+len(s.Removed)+len(s.Updated) == 0 {
			sb.WriteString("  ")
			sb.WriteString(subtleStyle.Render("No changes"))
			sb.WriteString("\n")
			continue
		}
		renderCategory(&sb, "Added", s.Added, addedStyle)
		renderCategory(&sb, "Removed", s.Removed, removedStyle)
		renderCategory(&sb, "Updated", s.Updated, updatedStyle)
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")
	sb.WriteString(boldStyle.Render(fmt.Sprintf("Total: %s added, %s removed, %s updated",
		humanize.Comma(int64(totalAdded)), humanize.Comma(int64(totalRemoved)), humanize.Comma(int64(totalUpdated)))))
	return sb.String()
}

func renderCategory(sb *strings.Builder, label string, paths []string, style lipgloss.Style) {
	if len(paths) == 0 {
		return
	}
	sb.WriteString("  ")
	sb.WriteString(style.Render(fmt.Sprintf("%s: %s", label, humanize.Comma(int64(len(paths))))))
	sb.WriteString("\n")
	for i, path := range paths {
		if i >= maxExamples {
			sb.WriteString("    ")
			sb.WriteString(subtleStyle.Render(fmt.Sprintf("... and %d more", len(paths)-maxExamples)))
			sb.WriteString("\n")
			break
		}
		sb.WriteString("    • ")
		sb.WriteString(subtleStyle.Render(path))
		sb.WriteString("\n")
	}
}

func renderEmpty(stats music.Stats) string {
	msg := "No music found"
	if stats.Rows > 0 {
		msg = fmt.Sprintf("No music found (%s rows dropped)", humanize.Comma(int64(stats.Rows)))
	}
	return subtleStyle.Render(msg)
}

func renderLibrary(res music.Result, indexSize int64) string {
	st := res.Stats
	row := func(label string, n int) string {
		return labelStyle.Render(label) + boldStyle.Render(humanize.Comma(int64(n)))
	}

	lines := []string{
		titleStyle.Render("Library"),
		"",
		row("Songs", st.Songs),
		row("Albums", st.Albums),
		row("Artists", st.Artists),
		row("Genres", st.Genres),
		labelStyle.Render("Duration") + boldStyle.Render(formatLength(res.Library.Duration())),
	}
	if indexSize > 0 {
		lines = append(lines, labelStyle.Render("Index")+subtleStyle.Render(humanize.Bytes(uint64(indexSize))))
	}

	var dropped []string
	if st.Malformed > 0 {
		dropped = append(dropped, fmt.Sprintf("%s malformed", humanize.Comma(int64(st.Malformed))))
	}
	if st.Duplicates > 0 {
		dropped = append(dropped, fmt.Sprintf("%s duplicate", humanize.Comma(int64(st.Duplicates))))
	}
	if st.PhantomGenres > 0 {
		dropped = append(dropped, fmt.Sprintf("%d empty genres", st.PhantomGenres))
	}
	if st.NamelessGenres > 0 {
		dropped = append(dropped, fmt.Sprintf("%d nameless genres", st.NamelessGenres))
	}
	if len(dropped) > 0 {
		lines = append(lines, "", subtleStyle.Render("Dropped: "+strings.Join(dropped, ", ")))
	}
	return strings.Join(lines, "\n")
}

func renderArtists(lib *music.Library) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Artists"))
	sb.WriteString("\n")
	for _, ar := range lib.Artists {
		sb.WriteString("\n")
		sb.WriteString(boldStyle.Render(ar.DisplayName))
		sb.WriteString("\n")
		for _, al := range ar.Albums {
			year := ""
			if al.Year > 0 {
				year = fmt.Sprintf(" (%d)", al.Year)
			}
			sb.WriteString(fmt.Sprintf("  %s%s ", al.Name, year))
			sb.WriteString(subtleStyle.Render(english.Plural(len(al.Songs), "song", "songs")))
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderResume(song *music.Song, album *music.Album, pos time.Duration, at time.Time) string {
	where := song.Title
	if album != nil && album.Name != "" {
		where += " - " + album.Name
	}
	return subtleStyle.Render(fmt.Sprintf("Resume: %s at %s (saved %s)",
		where, formatLength(pos), humanize.Time(at)))
}

// formatLength renders durations as H:MM:SS, or M:SS under an hour.
func formatLength(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func renderExcluded(paths []string) string {
	if len(paths) == 0 {
		return subtleStyle.Render("No excluded paths")
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Excluded paths"))
	for _, p := range paths {
		sb.WriteString("\n  ")
		sb.WriteString(p)
	}
	return sb.String()
}
