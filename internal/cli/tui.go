package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

var (
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editorPromptStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// editColumn is the attribute being edited in the editor.
type editColumn int

const (
	editNone editColumn = iota
	editValue
	editSize
	editStart
)

func (c editColumn) String() string {
	switch c {
	case editValue:
		return "value"
	case editSize:
		return "size"
	case editStart:
		return "start"
	}
	return ""
}

// EditorActions are the side effects the editor triggers. Both receive the
// current working set.
type EditorActions struct {
	// Save writes the records back to their source.
	Save func(records []*field.Record) error

	// Export writes the artifacts and returns a short description of the
	// written files. force bypasses validation.
	Export func(records []*field.Record, force bool) (string, error)
}

// EditorModel is the bubbletea model of the layout editor.
type EditorModel struct {
	Title   string
	Records []*field.Record
	Cursor  int
	Offset  int
	Height  int

	Report  *layout.Report
	Message string
	Dirty   bool

	editing editColumn
	input   string
	quitArm bool
	actions EditorActions
}

// NewEditorModel creates an editor over records, which are edited in place.
func NewEditorModel(title string, records []*field.Record, actions EditorActions) EditorModel {
	return EditorModel{
		Title:   title,
		Records: records,
		Height:  15,
		Report:  layout.Validate(records),
		actions: actions,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateInput(msg), nil
		}
		return m.updateBrowse(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m.scroll()
	}
	return m, nil
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.quitArm = false
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.Dirty && !m.quitArm {
			m.quitArm = true
			m.Message = "Unsaved changes: press q again to quit, s to save"
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Records)-1 {
			m.Cursor++
		}
	case "pgup":
		m.Cursor = max(m.Cursor-m.Height, 0)
	case "pgdown":
		m.Cursor = max(min(m.Cursor+m.Height, len(m.Records)-1), 0)
	case "enter", "e":
		m.startEdit(editValue)
	case "w":
		m.startEdit(editSize)
	case "p":
		m.startEdit(editStart)
	case "r":
		total := layout.Recalculate(m.Records)
		m.changed()
		m.Message = fmt.Sprintf("Recalculated: %d bytes", total)
	case "v":
		m.Report = layout.Validate(m.Records)
		m.Message = m.Report.Status()
	case "s":
		m.save()
	case "x", "X":
		m.export(key == "X")
	}
	m.scroll()
	return m, nil
}

func (m *EditorModel) startEdit(col editColumn) {
	r := m.current()
	if r == nil {
		return
	}
	m.editing = col
	switch col {
	case editValue:
		m.input = r.Value
	case editSize:
		m.input = intCell(r.Size)
	case editStart:
		m.input = intCell(r.Start)
	}
	m.Message = ""
}

func (m EditorModel) updateInput(msg tea.KeyMsg) EditorModel {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.editing, m.input = editNone, ""
		m.Message = "Edit cancelled"
	case tea.KeyEnter:
		if err := m.commit(); err != nil {
			m.Message = err.Error()
			return m
		}
		m.editing, m.input = editNone, ""
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m
}

// commit applies the input to the current record.
func (m *EditorModel) commit() error {
	r := m.current()
	if r == nil {
		return nil
	}
	switch m.editing {
	case editValue:
		r.Value = m.input
	case editSize, editStart:
		var p *int
		if s := strings.TrimSpace(m.input); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s must be a whole number, got %q", m.editing, s)
			}
			p = field.IntPtr(n)
		}
		if m.editing == editSize {
			r.Size = p
		} else {
			r.Start = p
		}
	}
	m.changed()
	m.Message = fmt.Sprintf("%s: %s updated", r.Name, m.editing)
	return nil
}

func (m *EditorModel) changed() {
	m.Dirty = true
	m.Report = layout.Validate(m.Records)
}

func (m *EditorModel) save() {
	if m.actions.Save == nil {
		m.Message = "Saving is not available"
		return
	}
	if err := m.actions.Save(m.Records); err != nil {
		m.Message = "Save failed: " + errors.UserMessage(err)
		return
	}
	m.Dirty = false
	m.Message = "Saved"
}

func (m *EditorModel) export(force bool) {
	if m.actions.Export == nil {
		m.Message = "Export is not available"
		return
	}
	desc, err := m.actions.Export(m.Records, force)
	if err != nil {
		m.Message = "Export refused: " + errors.UserMessage(err)
		if !force {
			m.Message += " (X to force)"
		}
		return
	}
	m.Message = "Exported " + desc
}

func (m EditorModel) current() *field.Record {
	if m.Cursor < 0 || m.Cursor >= len(m.Records) {
		return nil
	}
	return m.Records[m.Cursor]
}

// scroll keeps the cursor inside the visible window.
func (m *EditorModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := m.Title
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(editorHelpStyle.Render("↑/↓ move  ⏎ value  w size  p start  r recalc  v validate  s save  x export  q quit"))
	b.WriteString("\n\n")

	if len(m.Records) == 0 {
		b.WriteString(StyleDim.Render("No fields"))
		b.WriteString("\n")
	} else {
		end := min(m.Offset+m.Height, len(m.Records))
		b.WriteString(fieldTable(m.Records[m.Offset:end], m.Cursor-m.Offset))
		b.WriteString("\n")
		b.WriteString(editorHelpStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))
		b.WriteString("\n")
	}

	if m.editing != editNone {
		name := ""
		if r := m.current(); r != nil {
			name = r.Name
		}
		b.WriteString(editorPromptStyle.Render(fmt.Sprintf("%s %s: ", name, m.editing)))
		b.WriteString(m.input + "█\n")
	}

	switch {
	case m.Report != nil && !m.Report.Valid():
		b.WriteString(StyleError.Render(m.Report.Status()))
	case m.Report != nil && m.Report.HasWarnings():
		b.WriteString(StyleWarning.Render(m.Report.Status()))
	case m.Report != nil:
		b.WriteString(StyleSuccess.Render(m.Report.Status()))
	}
	b.WriteString("\n")
	if m.Message != "" {
		b.WriteString(StyleDim.Render(m.Message))
		b.WriteString("\n")
	}
	return b.String()
}
