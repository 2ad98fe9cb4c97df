package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"promptgen.arpa/app/content"
	"promptgen.arpa/app/record"
)

// Renderer prints records and categories to the terminal. Styles degrade to
// plain text when out is not a terminal.
type Renderer struct {
	out io.Writer

	titleStyle    lipgloss.Style
	idStyle       lipgloss.Style
	dateStyle     lipgloss.Style
	itemStyle     lipgloss.Style
	favoriteStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out: out,
		titleStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		idStyle: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		dateStyle: r.NewStyle().
			Foreground(lipgloss.Color("243")),
		itemStyle: r.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true),
		favoriteStyle: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		hintStyle: r.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),
	}
}

// Record prints a header line followed by the text, numbering batch items.
func (r *Renderer) Record(title string, rec record.Record) error {
	header := r.titleStyle.Render(title) + "  " +
		r.idStyle.Render(rec.ID) + "  " +
		r.dateStyle.Render(rec.Timestamp.Local().Format(time.DateTime))
	if rec.Favorited {
		header += "  " + r.favoriteStyle.Render("★")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if rec.IsBatch {
		for i, item := range rec.Items {
			fmt.Fprintf(&b, "%s %s\n", r.itemStyle.Render(fmt.Sprintf("%d.", i+1)), item)
		}
	} else {
		b.WriteString(rec.Text)
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

// Records prints each record separated by a blank line, or hint when empty.
func (r *Renderer) Records(title func(string) string, recs []record.Record, hint string) error {
	if len(recs) == 0 {
		return r.Hint(hint)
	}
	for i, rec := range recs {
		if i > 0 {
			if _, err := io.WriteString(r.out, "\n"); err != nil {
				return err
			}
		}
		if err := r.Record(title(rec.Category), rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Categories(categories []*content.Category, title func(string) string) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 3, ' ', 0)
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			r.titleStyle.Render(c.Key),
			title(c.Key),
			r.idStyle.Render(c.Strategy.Kind().String()),
		)
	}
	return w.Flush()
}

func (r *Renderer) Hint(msg string) error {
	_, err := fmt.Fprintln(r.out, r.hintStyle.Render(msg))
	return err
}
