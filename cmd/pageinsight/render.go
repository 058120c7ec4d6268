package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"page-insight/internal/domain/entity"
	"page-insight/internal/textanalysis"
)

// gramsShown is how many n-grams of each size the text output lists.
const gramsShown = 10

// renderer writes human-readable output. Colors are dropped automatically
// when w is not a terminal.
type renderer struct {
	w      io.Writer
	title  lipgloss.Style
	muted  lipgloss.Style
	label  lipgloss.Style
	errorS lipgloss.Style
	column lipgloss.Style
	box    lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	re := lipgloss.NewRenderer(w)
	return &renderer{
		w:      w,
		title:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:  re.NewStyle().Foreground(lipgloss.Color("8")),
		label:  re.NewStyle().Bold(true),
		errorS: re.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		column: re.NewStyle().Width(30).PaddingRight(2),
		box:    re.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (r *renderer) report(rep *entity.PageReport) {
	title := rep.Meta.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintln(r.w, r.title.Render(title))
	fmt.Fprintln(r.w, r.muted.Render(rep.Meta.URL))
	if rep.Meta.Description != "" {
		fmt.Fprintln(r.w, rep.Meta.Description)
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "%s %d   %s %d\n",
		r.label.Render("Words"), rep.Content.WordCount,
		r.label.Render("Characters"), rep.Content.CharacterCount)

	for _, h := range []struct {
		tag   string
		items []string
	}{
		{"H1", rep.Headings.H1},
		{"H2", rep.Headings.H2},
		{"H3", rep.Headings.H3},
	} {
		for _, text := range h.items {
			fmt.Fprintf(r.w, "%s  %s\n", r.label.Render(h.tag), text)
		}
	}
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, lipgloss.JoinHorizontal(lipgloss.Top,
		r.gramColumn("Top words", rep.Analysis.OneGrams),
		r.gramColumn("Top bigrams", rep.Analysis.TwoGrams),
		r.gramColumn("Top trigrams", rep.Analysis.ThreeGrams),
	))
}

func (r *renderer) gramColumn(heading string, grams []textanalysis.NGram) string {
	lines := []string{r.label.Render(heading)}
	if len(grams) == 0 {
		lines = append(lines, r.muted.Render("none"))
	}
	for i, g := range grams {
		if i == gramsShown {
			break
		}
		lines = append(lines, fmt.Sprintf("%3d  %s", g.Count, g.Text))
	}
	return r.column.Render(strings.Join(lines, "\n"))
}

func (r *renderer) failure(url string, err error) {
	fmt.Fprintf(r.w, "%s %s\n", r.errorS.Render("FAILED"), url)
	fmt.Fprintln(r.w, r.muted.Render(err.Error()))
}

func (r *renderer) compression(level entity.CompressionLevel, res *entity.CompressionResult) {
	fmt.Fprintf(r.w, "%s %d   %s %.2f   %s %d -> %d\n",
		r.label.Render("Level"), level,
		r.label.Render("Ratio"), res.Ratio,
		r.label.Render("Characters"), res.OriginalLength, res.CompressedLength)
	fmt.Fprintln(r.w, r.box.Render(res.Text))
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
