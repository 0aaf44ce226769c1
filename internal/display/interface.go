package display

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/mahjong-cli/internal/game"
	"github.com/lox/mahjong-cli/internal/session"
)

// UI drives a game session through the TUI. It subscribes to the session's
// event bus for the table log and translates typed commands into session
// calls.
//
// Event callbacks arrive with the session lock held, so OnEvent never calls
// back into the session; state refreshes happen on their own goroutine.
type UI struct {
	model     *Model
	program   *tea.Program
	session   *session.Session
	bus       game.EventBus
	logger    *log.Logger
	formatter *game.EventFormatter

	// send delivers a message to the render loop; replaced in tests
	send func(tea.Msg)

	refresh chan struct{}
	stop    chan struct{}
}

// NewUI creates a TUI over the session and subscribes to its bus
func NewUI(sess *session.Session, bus game.EventBus, cfg *session.Config, logger *log.Logger) *UI {
	model := NewModel(logger, NewStyles())
	program := tea.NewProgram(model, tea.WithAltScreen())

	ui := &UI{
		model:   model,
		program: program,
		session: sess,
		bus:     bus,
		logger:  logger.WithPrefix("display"),
		formatter: game.NewEventFormatter(game.FormattingOptions{
			Names:       cfg.SeatNames(),
			Perspective: cfg.Game.HumanSeat,
		}),
		refresh: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	ui.send = program.Send
	bus.Subscribe(ui)
	return ui
}

// Start launches the render loop and the state refresher
func (ui *UI) Start() error {
	go func() {
		if _, err := ui.program.Run(); err != nil {
			fmt.Printf("Error running TUI: %v\n", err)
		}
	}()
	go ui.refreshLoop()
	return nil
}

// Close tears the TUI down and restores the terminal
func (ui *UI) Close() error {
	close(ui.stop)
	ui.bus.Unsubscribe(ui)
	if ui.program != nil {
		ui.program.Quit()
		ui.program.Wait()

		fmt.Print("\033[?25h") // Show cursor
		fmt.Print("\033c")     // Reset terminal
	}
	return nil
}

// OnEvent renders a game event into the table log. Called with the session
// lock held; it must only hand messages to the render loop.
func (ui *UI) OnEvent(event game.GameEvent) {
	ui.send(logMsg{line: ui.formatter.Format(event)})

	// Coalesced refresh signal; the refresher reads state once the
	// session lock is released
	select {
	case ui.refresh <- struct{}{}:
	default:
	}
}

func (ui *UI) refreshLoop() {
	for {
		select {
		case <-ui.stop:
			return
		case <-ui.refresh:
			ui.send(snapshotMsg{state: ui.session.State()})
		}
	}
}

// Run consumes typed commands until the user quits
func (ui *UI) Run() error {
	for {
		action, args, shouldContinue, err := ui.model.WaitForAction()
		if err != nil {
			ui.logger.Error("error waiting for action", "error", err)
			continue
		}
		if !shouldContinue {
			return nil
		}
		if !ui.processCommand(action, args) {
			return nil
		}
	}
}

// processCommand handles one typed command, returning false to quit
func (ui *UI) processCommand(action string, args []string) bool {
	ui.logger.Debug("processing command", "action", action, "args", args)

	switch action {
	case "quit", "q", "exit":
		return false
	case "":
		return true
	case "new":
		ui.send(clearLogMsg{})
		ui.session.StartNewGame()
		return true
	case "discard", "d":
		ui.handleDiscard(args)
	case "win", "w":
		ui.handleWin()
	case "kong", "k":
		ui.handleKong(args)
	case "pung", "p":
		ui.handleClaim(game.ClaimPung)
	case "chow", "c", "chi":
		ui.handleClaim(game.ClaimChow)
	case "pass":
		ui.handlePass()
	case "hand", "h":
		ui.handleShowHand()
	case "discards":
		ui.handleShowDiscards()
	case "melds":
		ui.handleShowMelds()
	case "wall":
		ui.handleShowWall()
	case "help", "?":
		ui.handleHelp()
	default:
		ui.say(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", action))
	}
	return true
}

// say writes a line to the table log
func (ui *UI) say(line string) {
	ui.send(logMsg{line: line})
}

func (ui *UI) sayError(err error) {
	ui.say(fmt.Sprintf("Error: %s", err))
}

// humanSeat resolves the human seat from live state, -1 when there is none
func (ui *UI) humanSeat() int {
	return ui.session.State().HumanSeat()
}

func (ui *UI) handleDiscard(args []string) {
	seat := ui.humanSeat()
	if seat < 0 {
		ui.say("Error: no seat to play from")
		return
	}
	if len(args) == 0 {
		ui.say("Error: specify the tile number: 'discard <n>'")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		ui.say(fmt.Sprintf("Error: invalid tile number: %s", args[0]))
		return
	}

	hand := ui.session.State().Player(seat).Hand
	if n < 1 || n > len(hand) {
		ui.say(fmt.Sprintf("Error: tile number must be 1-%d", len(hand)))
		return
	}

	if err := ui.session.Discard(seat, hand[n-1].ID); err != nil {
		ui.sayError(err)
	}
}

// handleWin claims the discard when a window is open, otherwise declares a
// self-drawn win.
func (ui *UI) handleWin() {
	seat := ui.humanSeat()
	if seat < 0 {
		ui.say("Error: no seat to play from")
		return
	}

	st := ui.session.State()
	var err error
	if st.Phase == game.ActionWindow {
		err = ui.session.Claim(seat, game.ClaimWin)
	} else {
		err = ui.session.DeclareSelfDrawWin(seat)
	}
	if err != nil {
		ui.sayError(err)
	}
}

// handleKong claims the discard when a window is open, otherwise declares a
// concealed kong from the hand.
func (ui *UI) handleKong(args []string) {
	seat := ui.humanSeat()
	if seat < 0 {
		ui.say("Error: no seat to play from")
		return
	}

	st := ui.session.State()
	if st.Phase == game.ActionWindow {
		if err := ui.session.Claim(seat, game.ClaimKong); err != nil {
			ui.sayError(err)
		}
		return
	}

	kinds := game.ConcealedKongKinds(st.Player(seat).Hand)
	switch {
	case len(kinds) == 0:
		ui.say("Error: no concealed kong available")
	case len(kinds) == 1:
		if err := ui.session.DeclareConcealedKong(seat, kinds[0]); err != nil {
			ui.sayError(err)
		}
	default:
		if len(args) == 0 {
			labels := make([]string, len(kinds))
			for i, k := range kinds {
				labels[i] = fmt.Sprintf("%d:%s", i+1, k)
			}
			ui.say(fmt.Sprintf("Multiple kongs available, pick one: 'kong <n>' of %v", labels))
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(kinds) {
			ui.say(fmt.Sprintf("Error: kong number must be 1-%d", len(kinds)))
			return
		}
		if err := ui.session.DeclareConcealedKong(seat, kinds[n-1]); err != nil {
			ui.sayError(err)
		}
	}
}

func (ui *UI) handleClaim(kind game.ClaimKind) {
	seat := ui.humanSeat()
	if seat < 0 {
		ui.say("Error: no seat to play from")
		return
	}
	if err := ui.session.Claim(seat, kind); err != nil {
		ui.sayError(err)
	}
}

func (ui *UI) handlePass() {
	seat := ui.humanSeat()
	if seat < 0 {
		ui.say("Error: no seat to play from")
		return
	}
	if err := ui.session.Pass(seat); err != nil {
		ui.sayError(err)
	}
}

func (ui *UI) handleShowHand() {
	seat := ui.humanSeat()
	if seat < 0 {
		ui.say("Error: no seat to play from")
		return
	}
	p := ui.session.State().Player(seat)
	ui.say(fmt.Sprintf("Your hand: %s", ui.model.FormatRack(p.Hand)))
	if len(p.Melds) > 0 {
		ui.say(fmt.Sprintf("Your melds: %s", ui.model.formatMelds(p.Melds)))
	}
}

func (ui *UI) handleShowDiscards() {
	st := ui.session.State()
	ui.say("Discards:")
	for seat := 0; seat < game.NumSeats; seat++ {
		p := st.Player(seat)
		ui.say(fmt.Sprintf("  %s: %s", p.Name, ui.model.FormatTiles(p.Discards)))
	}
}

func (ui *UI) handleShowMelds() {
	st := ui.session.State()
	ui.say("Melds:")
	for seat := 0; seat < game.NumSeats; seat++ {
		p := st.Player(seat)
		if len(p.Melds) == 0 {
			ui.say(fmt.Sprintf("  %s: (none)", p.Name))
			continue
		}
		ui.say(fmt.Sprintf("  %s: %s", p.Name, ui.model.formatMelds(p.Melds)))
	}
}

func (ui *UI) handleShowWall() {
	ui.say(fmt.Sprintf("Wall: %d tiles remain", ui.session.State().WallCount()))
}

func (ui *UI) handleHelp() {
	ui.say("Available commands:")
	ui.say("Turn actions:")
	ui.say("  discard <n> - Discard tile number n from your hand")
	ui.say("  win         - Declare a self-drawn win")
	ui.say("  kong        - Declare a concealed kong")
	ui.say("Claiming a discard:")
	ui.say("  win / kong / pung / chow - Claim the last discard")
	ui.say("  pass        - Decline to claim")
	ui.say("Information:")
	ui.say("  hand        - Show your hand and melds")
	ui.say("  discards    - Show every seat's discard pile")
	ui.say("  melds       - Show every seat's melds")
	ui.say("  wall        - Show the remaining wall count")
	ui.say("Utility:")
	ui.say("  new         - Abandon this game and deal a new one")
	ui.say("  help        - Show this help")
	ui.say("  quit        - Quit")
}
