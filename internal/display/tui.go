package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/mahjong-cli/internal/game"
	"github.com/lox/mahjong-cli/internal/tiles"
)

// Model is the Bubble Tea model for the mahjong table
type Model struct {
	logger *log.Logger
	styles *Styles

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Table state, replaced wholesale by snapshotMsg
	snapshot game.GameState
	hasGame  bool

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// ActionResult represents the result of a user action
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
	Error    error
}

// QuitMsg signals the program to quit
type QuitMsg struct{}

// logMsg appends one line to the game log
type logMsg struct {
	line string
}

// snapshotMsg replaces the table state the panes render from
type snapshotMsg struct {
	state game.GameState
}

// clearLogMsg empties the game log, used when a new game is dealt
type clearLogMsg struct{}

// NewModel creates a new TUI model
func NewModel(logger *log.Logger, styles *Styles) *Model {
	return NewModelWithOptions(logger, styles, false)
}

// NewModelWithOptions creates a new TUI model with test mode option
func NewModelWithOptions(logger *log.Logger, styles *Styles, testMode bool) *Model {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a command (discard 3, pung, pass, help, etc.)"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:       logger.WithPrefix("tui"),
		styles:       styles,
		logViewport:  vp,
		actionInput:  ti,
		gameLog:      []string{},
		actionResult: make(chan ActionResult, 4),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1, // Start with input focused
		testMode:     testMode,
		capturedLog:  []string{},
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *Model) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case logMsg:
		m.AddLogEntry(msg.line)

	case snapshotMsg:
		wasOver := m.hasGame && m.snapshot.Phase == game.GameOver
		m.snapshot = msg.state
		m.hasGame = true
		if !wasOver && msg.state.Phase == game.GameOver {
			m.logOutcome()
		}

	case clearLogMsg:
		m.ClearLog()

	case tea.WindowSizeMsg:
		m.logger.Debug("updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.deliver(ActionResult{Action: "quit", Continue: false})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				action := strings.TrimSpace(m.actionInput.Value())
				m.processAction(action)
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	// Update components
	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always update viewport (for scrolling)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionWidth := m.width - 2
	if actionWidth < 1 {
		actionWidth = 1
	}
	innerActionHeight := actionHeight
	if innerActionHeight < 1 {
		innerActionHeight = 1
	}

	actionPane := m.styles.ActionPane.
		Width(actionWidth).
		Height(innerActionHeight).
		Render(actionContent)
	paneHeight := lipgloss.Height(actionPane)

	// Sidebar pane (right of the log, same height)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := 26
	if w := lipgloss.Width(sidebarContent); w > sidebarWidth {
		sidebarWidth = w
	}
	sidebarHeight := m.height - paneHeight - 2
	if sidebarHeight < 1 {
		sidebarHeight = 1
	}

	sidebarStyle := m.styles.SidebarPane.
		Width(sidebarWidth).
		Height(sidebarHeight)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	// Log pane (left, fills the rest)
	logWidth := m.width - sidebarWidth - 4
	if logWidth < 1 {
		logWidth = 1
	}
	logHeight := sidebarHeight
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// On first proper sizing, jump to the newest entries
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := m.styles.LogPane.
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(m.styles.Focused)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)

	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// logOutcome writes the end-of-game lines into the table log. Hands stay
// hidden all game; the winner's goes face up here.
func (m *Model) logOutcome() {
	if m.snapshot.Winner != game.NoWinner {
		w := m.snapshot.Player(m.snapshot.Winner)
		m.AddLogEntry(fmt.Sprintf("%s reveals: %s", w.Name, m.FormatTiles(w.Hand)))
		if len(w.Melds) > 0 {
			m.AddLogEntry(fmt.Sprintf("%s melds: %s", w.Name, m.formatMelds(w.Melds)))
		}
	}
	m.AddLogEntry("Type 'new' to deal again, 'quit' to exit.")
}

// renderSidebarPane shows the wall, the turn marker and each seat's table
// presence.
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	if !m.hasGame {
		content.WriteString(m.styles.Info.Render("Waiting for deal..."))
		return content.String()
	}

	content.WriteString(m.styles.Warning.Render(fmt.Sprintf("Wall: %d tiles", m.snapshot.WallCount())))
	content.WriteString("\n")
	content.WriteString(m.styles.Info.Render(m.phaseLine()))
	content.WriteString("\n\n")

	for seat := 0; seat < game.NumSeats; seat++ {
		p := m.snapshot.Player(seat)

		marker := "  "
		if m.snapshot.Phase == game.Playing && m.snapshot.CurrentTurn == seat {
			marker = "> "
		}

		tags := ""
		if p.Dealer {
			tags += " *"
		}
		if p.Human {
			tags += " (you)"
		}

		line := fmt.Sprintf("%s%s%s", marker, p.Name, tags)
		if m.snapshot.Winner == seat {
			line = m.styles.Success.Render(line + "  WINNER")
		}
		content.WriteString(line)
		content.WriteString("\n")
		content.WriteString(m.styles.Info.Render(
			fmt.Sprintf("    melds %d, discards %d", len(p.Melds), len(p.Discards))))
		content.WriteString("\n")
	}

	return content.String()
}

func (m *Model) phaseLine() string {
	switch m.snapshot.Phase {
	case game.Playing:
		return fmt.Sprintf("%s to play", m.snapshot.CurrentPlayer().Name)
	case game.ActionWindow:
		if m.snapshot.LastDiscard != nil {
			return fmt.Sprintf("claims open on %s", m.snapshot.LastDiscard.Tile)
		}
		return "claims open"
	case game.GameOver:
		if m.snapshot.Winner == game.NoWinner {
			return "wall empty, drawn game"
		}
		return "game over"
	default:
		return m.snapshot.Phase.String()
	}
}

// renderActionPane renders the rack, the open claims and the input field
func (m *Model) renderActionPane() string {
	var content strings.Builder

	human := -1
	if m.hasGame {
		human = m.snapshot.HumanSeat()
	}

	if human >= 0 {
		rack := m.FormatRack(m.snapshot.Player(human).Hand)
		content.WriteString(m.styles.HandInfo.Render("Hand: "))
		content.WriteString(rack)
		content.WriteString("\n")

		if melds := m.snapshot.Player(human).Melds; len(melds) > 0 {
			content.WriteString(m.styles.Info.Render("Melds: " + m.formatMelds(melds)))
			content.WriteString("\n")
		}

		if hints := m.renderAvailableActions(human); hints != "" {
			content.WriteString(hints)
			content.WriteString("\n")
		}
	}

	m.actionInput.Placeholder = m.placeholder(human)
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(m.styles.Info.Render(
			"Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(m.styles.Info.Render(
			"Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

func (m *Model) placeholder(human int) string {
	if !m.hasGame || human < 0 {
		return "Enter a command ('new' to deal, 'quit' to exit)"
	}
	switch {
	case m.snapshot.Phase == game.GameOver:
		return "'new' to deal again, 'quit' to exit"
	case m.snapshot.Phase == game.ActionWindow && len(m.snapshot.ClaimsFor(human)) > 0:
		return "Claim the discard or 'pass'"
	case m.snapshot.Phase == game.Playing && m.snapshot.CurrentTurn == human:
		return "Your turn: 'discard <n>' (or 'win', 'kong')"
	default:
		return "Waiting... ('hand', 'discards', 'help')"
	}
}

// renderAvailableActions renders the claim buttons while a window is open
// for the human seat, or the turn prompt when it is their go.
func (m *Model) renderAvailableActions(human int) string {
	if m.snapshot.Phase == game.ActionWindow && m.snapshot.LastDiscard != nil {
		claims := m.snapshot.ClaimsFor(human)
		if len(claims) == 0 {
			return ""
		}
		tile := m.FormatTile(m.snapshot.LastDiscard.Tile)
		var actions []string
		for _, c := range claims {
			switch c {
			case game.ClaimWin:
				actions = append(actions, m.styles.Success.Render("[win]"))
			case game.ClaimKong:
				actions = append(actions, m.styles.Warning.Render("[kong]"))
			case game.ClaimPung:
				actions = append(actions, m.styles.Warning.Render("[pung]"))
			case game.ClaimChow:
				actions = append(actions, m.styles.Warning.Render("[chow]"))
			}
		}
		actions = append(actions, m.styles.Error.Render("[pass]"))
		return m.styles.Actions.Render(fmt.Sprintf("%s discarded: ", tile)) + strings.Join(actions, " ")
	}

	if m.snapshot.Phase == game.Playing && m.snapshot.CurrentTurn == human {
		hand := m.snapshot.Player(human).Hand
		var actions []string
		if game.CanWin(hand) {
			actions = append(actions, m.styles.Success.Render("[win]"))
		}
		if len(game.ConcealedKongKinds(hand)) > 0 {
			actions = append(actions, m.styles.Warning.Render("[kong]"))
		}
		if len(actions) == 0 {
			return ""
		}
		return m.styles.Actions.Render("Available: ") + strings.Join(actions, " ")
	}

	return ""
}

// FormatRack renders a hand with 1-based indices for the discard command
func (m *Model) FormatRack(hand []tiles.Tile) string {
	if len(hand) == 0 {
		return ""
	}
	parts := make([]string, len(hand))
	for i, t := range hand {
		parts[i] = fmt.Sprintf("%d:%s", i+1, m.FormatTile(t))
	}
	return strings.Join(parts, " ")
}

// FormatTiles renders tiles without indices
func (m *Model) FormatTiles(ts []tiles.Tile) string {
	if len(ts) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = m.FormatTile(t)
	}
	return strings.Join(parts, " ")
}

// FormatTile renders one tile label colored by suit
func (m *Model) FormatTile(t tiles.Tile) string {
	return m.styles.Tile(t.Kind).Render(t.String())
}

func (m *Model) formatMelds(melds []game.Meld) string {
	parts := make([]string, len(melds))
	for i, meld := range melds {
		parts[i] = fmt.Sprintf("%s[%s]", meld.Type, m.FormatTiles(meld.Tiles))
	}
	return strings.Join(parts, " ")
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	// In test mode, also capture the log entry
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *Model) ClearLog() {
	m.gameLog = []string{}
	m.logViewport.SetContent("")
}

// processAction parses a submitted input line into an action result
func (m *Model) processAction(input string) {
	parts := strings.Fields(strings.ToLower(input))

	var action string
	var args []string

	if len(parts) > 0 {
		action = parts[0]
		args = parts[1:]
	}

	m.deliver(ActionResult{
		Action:   action,
		Args:     args,
		Continue: true, // Let the command handler decide whether to continue
	})
}

// deliver hands an action to the command loop without ever blocking the
// render goroutine. Dropping input on a full channel beats deadlocking it.
func (m *Model) deliver(result ActionResult) {
	select {
	case m.actionResult <- result:
	default:
		m.logger.Warn("input dropped, command loop busy", "action", result.Action)
	}
}

// WaitForAction waits for user input (for use by the command loop)
func (m *Model) WaitForAction() (string, []string, bool, error) {
	result := <-m.actionResult
	return result.Action, result.Args, result.Continue, result.Error
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *Model) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an action (test mode only)
func (m *Model) InjectAction(action string, args []string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{Action: action, Args: args, Continue: true}:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}
