package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

const maxNameColumn = 48

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	input  io.Reader

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	runErr  error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, input io.Reader) *TUI {
	return &TUI{output: output, input: input}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := applyStartOptions(options)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	program := tea.NewProgram(
		newTUIModel(cfg.mode),
		tea.WithOutput(t.output),
		tea.WithInput(t.input),
		tea.WithContext(ctx),
	)
	done := make(chan struct{})

	t.program = program
	t.done = done

	go func() {
		_, err := program.Run()

		t.mu.Lock()
		t.runErr = err
		t.mu.Unlock()

		close(done)
	}()

	return nil
}

// Close stops the program and waits for the terminal to be restored.
func (t *TUI) Close(ctx context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Quit()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Send(waitMsg{})

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayScanProgress updates the hashing status line.
func (t *TUI) DisplayScanProgress(_ context.Context, progress m.ScanProgress) {
	t.send(progressMsg(progress))
}

// DisplayCatalog replaces the displayed map list.
func (t *TUI) DisplayCatalog(ctx context.Context, dir m.Path, entries []m.MapEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(catalogMsg{dir: dir, entries: entries})

	return nil
}

// DisplayVerificationStarted shows the spinner while the request is in flight.
func (t *TUI) DisplayVerificationStarted(_ context.Context, digests int) {
	t.send(verifyingMsg{digests: digests})
}

// DisplayDeletionReport shows the outcome of a deletion batch.
func (t *TUI) DisplayDeletionReport(ctx context.Context, report m.DeletionReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(reportMsg{report: report})

	return nil
}

// Notify shows a non-fatal error below the map list.
func (t *TUI) Notify(_ context.Context, err error) {
	if err == nil {
		return
	}

	t.send(noticeMsg{text: err.Error()})
}

// SelectForDeletion opens the checkbox picker and blocks until the user
// confirms or aborts.
func (t *TUI) SelectForDeletion(ctx context.Context, entries []m.MapEntry) ([]string, error) {
	program, done := t.current()
	if program == nil {
		return nil, ErrInteractiveUnavailable
	}

	reply := make(chan selectionReply, 1)
	program.Send(selectMsg{entries: entries, reply: reply})

	select {
	case r := <-reply:
		return r.names, r.err
	case <-done:
		return nil, ErrSelectionAborted
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the error the program exited with, if any.
func (t *TUI) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.runErr
}

func (t *TUI) current() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	program, _ := t.current()
	if program == nil {
		return
	}

	program.Send(msg)
}

type (
	progressMsg  m.ScanProgress
	verifyingMsg struct{ digests int }
	catalogMsg   struct {
		dir     m.Path
		entries []m.MapEntry
	}
	reportMsg struct{ report m.DeletionReport }
	noticeMsg struct{ text string }
	selectMsg struct {
		entries []m.MapEntry
		reply   chan<- selectionReply
	}
	waitMsg struct{}
)

type selectionReply struct {
	names []string
	err   error
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "delete selected")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// tuiModel is the Bubble Tea model behind TUI.
type tuiModel struct {
	mode    StartMode
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	status  string // spinner line; empty when idle
	dir     m.Path
	entries []m.MapEntry
	notices []string
	report  *m.DeletionReport

	selecting bool
	checked   map[int]bool
	cursor    int
	reply     chan<- selectionReply

	waiting  bool
	height   int
	width    int
	offset   int
	quitting bool
}

func newTUIModel(mode StartMode) tuiModel {
	return tuiModel{
		mode:    mode,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
		checked: map[int]bool{},
	}
}

func (tm tuiModel) Init() tea.Cmd {
	return tm.spinner.Tick
}

//nolint:cyclop // one case per message type
func (tm tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tm.height = msg.Height
		tm.width = msg.Width

		return tm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		tm.spinner, cmd = tm.spinner.Update(msg)

		return tm, cmd

	case progressMsg:
		tm.status = fmt.Sprintf("Hashing %d/%d %s", msg.Index, msg.Total, msg.Name)
		if msg.Index >= msg.Total {
			tm.status = ""
		}

		return tm, nil

	case verifyingMsg:
		tm.status = fmt.Sprintf("Verifying %d map(s)", msg.digests)
		return tm, nil

	case catalogMsg:
		tm.status = ""
		tm.dir = msg.dir
		tm.entries = msg.entries
		tm.offset = 0

		return tm, nil

	case reportMsg:
		report := msg.report
		tm.report = &report

		return tm, nil

	case noticeMsg:
		tm.notices = append(tm.notices, msg.text)
		return tm, nil

	case selectMsg:
		tm.status = ""
		tm.entries = msg.entries
		tm.selecting = true
		tm.checked = map[int]bool{}
		tm.cursor = 0
		tm.offset = 0
		tm.reply = msg.reply

		return tm, nil

	case waitMsg:
		tm.waiting = true
		return tm, nil

	case tea.KeyMsg:
		return tm.handleKeyPress(msg)
	}

	return tm, nil
}

func (tm tuiModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if tm.selecting {
		return tm.handleSelectionKey(msg)
	}

	switch {
	case key.Matches(msg, tm.keys.Quit):
		tm.quitting = true
		return tm, tea.Quit

	case key.Matches(msg, tm.keys.Down):
		tm.offset = min(tm.offset+1, tm.maxOffset())
		return tm, nil

	case key.Matches(msg, tm.keys.Up):
		tm.offset = max(tm.offset-1, 0)
		return tm, nil
	}

	return tm, nil
}

func (tm tuiModel) handleSelectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		tm = tm.finishSelection(selectionReply{err: ErrSelectionAborted})
		tm.quitting = true

		return tm, tea.Quit

	case key.Matches(msg, tm.keys.Quit):
		return tm.finishSelection(selectionReply{err: ErrSelectionAborted}), nil

	case key.Matches(msg, tm.keys.Confirm):
		return tm.finishSelection(selectionReply{names: tm.selectedNames()}), nil

	case key.Matches(msg, tm.keys.Down):
		tm.cursor = min(tm.cursor+1, max(len(tm.entries)-1, 0))
		tm = tm.followCursor()

		return tm, nil

	case key.Matches(msg, tm.keys.Up):
		tm.cursor = max(tm.cursor-1, 0)
		tm = tm.followCursor()

		return tm, nil

	case key.Matches(msg, tm.keys.Toggle):
		if len(tm.entries) > 0 {
			tm.checked[tm.cursor] = !tm.checked[tm.cursor]
		}

		return tm, nil

	case key.Matches(msg, tm.keys.All):
		all := len(tm.selectedNames()) < len(tm.entries)
		for i := range tm.entries {
			tm.checked[i] = all
		}

		return tm, nil
	}

	return tm, nil
}

func (tm tuiModel) finishSelection(reply selectionReply) tuiModel {
	if tm.reply != nil {
		tm.reply <- reply
	}

	tm.selecting = false
	tm.reply = nil

	return tm
}

func (tm tuiModel) selectedNames() []string {
	var names []string

	for i, entry := range tm.entries {
		if tm.checked[i] {
			names = append(names, entry.Name)
		}
	}

	return names
}

func (tm tuiModel) followCursor() tuiModel {
	perPage := tm.itemsPerPage()

	if tm.cursor < tm.offset {
		tm.offset = tm.cursor
	}

	if tm.cursor >= tm.offset+perPage {
		tm.offset = tm.cursor - perPage + 1
	}

	return tm
}

// itemsPerPage calculates how many map rows fit on screen.
func (tm tuiModel) itemsPerPage() int {
	if tm.height == 0 {
		return len(tm.entries) + 1
	}
	// Reserve space for the header box, status, directory, summary,
	// notices and the help footer.
	reserved := 12 + len(tm.notices)

	available := tm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (tm tuiModel) maxOffset() int {
	return max(len(tm.entries)-tm.itemsPerPage(), 0)
}

func (tm tuiModel) View() string {
	var b strings.Builder

	tm.renderHeader(&b)

	if tm.status != "" {
		fmt.Fprintf(&b, "  %s %s\n\n", tm.spinner.View(), tm.status)
	}

	if tm.dir != "" {
		fmt.Fprintf(&b, "  📁 %s\n\n", tm.dir)
	}

	if len(tm.entries) == 0 && tm.status == "" {
		b.WriteString("  📭 No maps to show\n")
	}

	tm.renderEntries(&b)
	tm.renderReport(&b)
	tm.renderNotices(&b)
	tm.renderFooter(&b)

	return b.String()
}

func (tm tuiModel) renderHeader(b *strings.Builder) {
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                  MapDispel - Map Verification                  ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n\n")
}

func (tm tuiModel) renderEntries(b *strings.Builder) {
	if len(tm.entries) == 0 {
		return
	}

	nameWidth := 0
	for _, entry := range tm.entries {
		nameWidth = max(nameWidth, len(entry.Name))
	}

	nameWidth = min(nameWidth, maxNameColumn)

	start := min(tm.offset, len(tm.entries))
	end := min(start+tm.itemsPerPage(), len(tm.entries))

	for i := start; i < end; i++ {
		entry := tm.entries[i]

		prefix := "  "
		if tm.selecting {
			box := "[ ]"
			if tm.checked[i] {
				box = "[x]"
			}

			prefix = "  " + box + " "

			if i == tm.cursor {
				prefix = cursorStyle.Render("> "+box) + " "
			}
		}

		fmt.Fprintf(b, "%s%-*s  %s\n", prefix, nameWidth, entry.Name, renderLabel(entry))
	}

	counts := map[m.ClassificationKind]int{}
	for _, entry := range tm.entries {
		counts[entry.Classification.Kind]++
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  📊 Total: %d map(s) | official %d | unknown %d | cheat %d\n",
		len(tm.entries), counts[m.Official], counts[m.Unknown], counts[m.Cheat])

	if len(tm.entries) > tm.itemsPerPage() {
		fmt.Fprintf(b, "  Showing %d-%d of %d\n", start+1, end, len(tm.entries))
	}
}

func (tm tuiModel) renderReport(b *strings.Builder) {
	if tm.report == nil {
		return
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  🗑  Deletion results:") + "\n")

	for _, res := range tm.report.Results {
		fmt.Fprintf(b, "    %s: %s\n", res.Name, deletionOutcome(res))
	}
}

func (tm tuiModel) renderNotices(b *strings.Builder) {
	if len(tm.notices) == 0 {
		return
	}

	b.WriteString("\n")

	for _, notice := range tm.notices {
		b.WriteString(warnStyle.Render("  ⚠️  "+notice) + "\n")
	}
}

func (tm tuiModel) renderFooter(b *strings.Builder) {
	b.WriteString("\n")

	if tm.selecting {
		b.WriteString("  " + tm.help.ShortHelpView([]key.Binding{
			tm.keys.Up, tm.keys.Down, tm.keys.Toggle, tm.keys.All, tm.keys.Confirm, tm.keys.Quit,
		}) + "\n")

		return
	}

	if tm.waiting {
		b.WriteString("  " + tm.help.ShortHelpView([]key.Binding{tm.keys.Up, tm.keys.Down, tm.keys.Quit}) + "\n")
	}
}
