package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"contracheck/internal/domain"
)

// Viewer displays run results interactively
type Viewer interface {
	View(rep *domain.RunReport) error
}

// FailureViewer browses the failed cases of a run in a TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View shows failed cases on the left and the selected case's details on the right.
// q or Esc quits, Tab switches focus between panes.
func (fv *FailureViewer) View(rep *domain.RunReport) error {
	failed := rep.Failures()
	if len(failed) == 0 {
		color.Green("✓ No failed test cases in the last run")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" Failed cases (%d/%d) ", len(failed), rep.Meta.TotalCases))

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	details.SetBorder(true).SetTitle(" Details ")

	for i, r := range failed {
		list.AddItem(listItemText(i, r), "", 0, nil)
	}
	list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		details.SetText(caseDetails(failed[index])).ScrollToBeginning()
	})
	details.SetText(caseDetails(failed[0]))

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetText(fmt.Sprintf("[gray]run %s | %s | [yellow]Tab[gray] switch pane  [yellow]q[gray] quit",
			tview.Escape(rep.Meta.RunID), tview.Escape(rep.Meta.Timestamp)))

	panes := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(panes, 0, 1, true).
		AddItem(footer, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if list.HasFocus() {
				app.SetFocus(details)
			} else {
				app.SetFocus(list)
			}
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).SetFocus(list).Run()
}

func listItemText(index int, r domain.TestCaseResult) string {
	return fmt.Sprintf("[yellow]%d.[white] %s [red](%s)", index+1, tview.Escape(r.Pair.Name), r.Mode)
}

// caseDetails renders one failed case for the details pane.
func caseDetails(r domain.TestCaseResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[white]\n\n", tview.Escape(r.Description))
	fmt.Fprintf(&b, "[gray]Mode:[white]           %s\n", r.Mode)
	fmt.Fprintf(&b, "[gray]Implementation:[white] %s\n", tview.Escape(r.Pair.ImplementationPath))
	fmt.Fprintf(&b, "[gray]Documentation:[white]  %s\n", tview.Escape(r.Pair.DocumentationPath))
	fmt.Fprintf(&b, "[gray]Expected exit:[white]  %d\n", r.ExpectedExitCode)
	fmt.Fprintf(&b, "[gray]Actual exit:[white]    %d\n", r.ActualExitCode)
	fmt.Fprintf(&b, "[gray]Failure:[white]        [red]%s[white]\n", r.Failure)
	fmt.Fprintf(&b, "\n%s\n", tview.Escape(r.Message))

	for _, stream := range []struct{ label, text string }{
		{"stdout", r.Stdout},
		{"stderr", r.Stderr},
	} {
		if strings.TrimSpace(stream.text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n[cyan]%s[white]\n%s\n", stream.label, tview.Escape(strings.TrimRight(stream.text, "\n")))
	}
	return b.String()
}
