package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/enhance"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const maxDescriptionWidth = 70

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	categoryStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	okStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
}

// CatalogTable renders grouped catalog items, one section per category.
func CatalogTable(w io.Writer, groups []catalog.CategoryGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No skills found.")
		return
	}

	const pad = 2
	nameW := len("NAME") + pad
	for _, g := range groups {
		for _, it := range g.Items {
			nameW = max(nameW, len(it.Name)+pad)
		}
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, categoryStyle.Render(fmt.Sprintf("%s (%d)", g.Category, len(g.Items))))
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("  %-*s %s", nameW, "NAME", "DESCRIPTION")))
		for _, it := range g.Items {
			fmt.Fprintf(w, "  %-*s %s\n", nameW, it.Name, truncate(it.Description, maxDescriptionWidth))
		}
	}
}

// CategoryTable renders per-category skill counts.
func CategoryTable(w io.Writer, counts []catalog.CategoryCount) {
	if len(counts) == 0 {
		fmt.Fprintln(os.Stderr, "No categories found.")
		return
	}

	const pad = 2
	catW := len("CATEGORY") + pad
	total := 0
	for _, c := range counts {
		catW = max(catW, len(c.Category)+pad)
		total += c.Count
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", catW, "CATEGORY", "SKILLS")))
	for _, c := range counts {
		fmt.Fprintf(w, "%-*s %6d\n", catW, c.Category, c.Count)
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%-*s %6d", catW, "total", total)))
}

// EnhanceTable renders the per-skill outcomes of an enhance run and a summary.
func EnhanceTable(w io.Writer, r enhance.Report) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case enhance.StatusEnhanced:
			fmt.Fprintf(w, "%s %s\n", okStyle.Render("enhanced"), o.Name)
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("→"), truncate(o.Description, maxDescriptionWidth))
		default:
			fmt.Fprintf(w, "%s %s: %s\n", warnStyle.Render(string(o.Status)), o.Name, o.Reason)
		}
	}
	if len(r.Outcomes) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, headerStyle.Render("Summary"))
	printField(w, "Enhanced", strconv.Itoa(r.Enhanced))
	printField(w, "Failed", strconv.Itoa(r.Failed))
	printField(w, "Skipped", strconv.Itoa(r.Skipped))
	printField(w, "Total", strconv.Itoa(r.Candidates))
	if r.DryRun {
		fmt.Fprintln(w, dimStyle.Render("(dry run: catalog not modified)"))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-10s %s\n", label+":", value)
}

// truncate shortens s to n runes, ending with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	const dots = "..."
	return strings.TrimRight(string(r[:n-len(dots)]), " ") + dots
}
