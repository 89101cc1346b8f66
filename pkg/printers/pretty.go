// Package printers renders console state for the command line.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
	"tableflip.dev/ampcred/pkg/theme"
)

// PrettyPrint writes human readable output to Out.
type PrettyPrint struct {
	Out io.Writer
	// ShowID adds the ID column to tables.
	ShowID bool
	// MarkdownStyle is the glamour style for record abstracts: "dark",
	// "light" or "notty".
	MarkdownStyle string
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

// Header prints the variant's title block.
func (pp *PrettyPrint) Header(v theme.Variant) {
	t := color.New(color.Bold, color.Underline)
	s := color.New(color.Faint, color.Italic)
	_, _ = t.Fprintln(pp.out(), v.Title)
	if v.Subtitle != "" {
		_, _ = s.Fprintln(pp.out(), v.Subtitle)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Empty prints an empty-state line.
func (pp *PrettyPrint) Empty(message string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", message)
}

// Event prints a single event line.
func (pp *PrettyPrint) Event(e event.Event) {
	pp.eventLine("", e)
}

func (pp *PrettyPrint) eventLine(prefix string, e event.Event) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	l := color.New(color.Faint)
	w := pp.out()

	_, _ = fmt.Fprint(w, prefix)
	if pp.ShowID {
		_, _ = y.Fprintf(w, "%s  ", e.ID)
	}
	_, _ = fmt.Fprint(w, e.Label())
	if e.Lane != "" {
		_, _ = l.Fprintf(w, " [%s]", e.Lane)
	}
	_, _ = fmt.Fprintln(w)
}

// Records prints the record list as a table, or message when it is empty.
func (pp *PrettyPrint) Records(records []record.Record, message string) {
	if len(records) == 0 {
		pp.Empty(message)
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []interface{}{bold.Sprint("Title"), bold.Sprint("Category"), bold.Sprint("Updated"), bold.Sprint("Tags")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, r := range records {
		row := []interface{}{r.Title, r.Category, r.When(), faint.Sprint(strings.Join(r.Tags, ", "))}
		if pp.ShowID {
			row = append([]interface{}{r.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// RecordDetail renders one record with its abstract as markdown.
func (pp *PrettyPrint) RecordDetail(r record.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	meta := []string{}
	if r.Category != "" {
		meta = append(meta, r.Category)
	}
	if when := r.When(); when != "" {
		meta = append(meta, when)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(meta, " · "))
	}
	if r.Abstract != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Abstract)
	}
	if len(r.Tags) > 0 {
		tags := make([]string, 0, len(r.Tags))
		for _, t := range r.Tags {
			tags = append(tags, "`"+t+"`")
		}
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(tags, " "))
	}

	style := pp.MarkdownStyle
	if style == "" {
		style = "notty"
	}
	out, err := glamour.Render(b.String(), style)
	if err != nil {
		return fmt.Errorf("printers: render %s: %w", r.ID, err)
	}
	_, _ = fmt.Fprint(pp.out(), out)
	return nil
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(pp.out(), string(b))
	return nil
}
