package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/NvMustang/fomo-sub000/pkg/event"
	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Printf(" %s\n", noun)
	default:
		_, _ = c.Printf(" %ss\n", noun)
	}
}

// Events renders a table of events with their resolved response.
func (pp *PrettyPrint) Events(events []*event.Event, resolved map[string]response.Response) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range events {
		row := []interface{}{e.Start.Format("Mon Jan 2 15:04"), e.Title, marker(resolved[e.ID]), strings.Join(e.Tags, ",")}
		if pp.ShowID {
			row = append([]interface{}{e.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// History renders response history entries oldest first.
func (pp *PrettyPrint) History(entries []*history.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		row := []interface{}{e.Created.String(), e.EventID, e.Initial.String(), "→", e.Final.String()}
		if pp.ShowID {
			row = append([]interface{}{e.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Counts renders filter-bar option badges sorted by option name.
func (pp *PrettyPrint) Counts(counts map[string]int) {
	if len(counts) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	options := make([]string, 0, len(counts))
	for option := range counts {
		options = append(options, option)
	}
	sort.Strings(options)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, option := range options {
		tbl.AddRow(option, counts[option])
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Who renders the users reacting to one event.
func (pp *PrettyPrint) Who(users map[string]response.Response) {
	if len(users) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, id := range ids {
		tbl.AddRow(id, users[id].Display())
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

func marker(r response.Response) string {
	if response.Normalize(r) == response.None {
		return ""
	}
	return r.Display()
}
