package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/mahjong-cli/internal/game"
	"github.com/lox/mahjong-cli/internal/gameid"
	"github.com/lox/mahjong-cli/internal/randutil"
	"github.com/lox/mahjong-cli/internal/tiles"
)

// Session owns the single live GameState and everything the rules engine
// deliberately leaves out: pacing, claim arbitration between seats, and
// driving the AI seats. Commands validate against the live state, commit a
// replacement, and publish whatever events the transition produced.
//
// Scheduled work snapshots the state's sequence number; by the time a timer
// fires, a command may have moved the game on, and the stale callback drops
// itself silently.
//
// Bus subscribers are called with the session lock held and must not call
// back into the session from OnEvent.
type Session struct {
	mu        sync.Mutex
	cfg       *Config
	logger    *log.Logger
	clock     quartz.Clock
	bus       game.EventBus
	ai        *game.AIEngine
	state     game.GameState
	gameID    string
	published uint64
	timer     *quartz.Timer
}

// New creates a session controller. The clock is injected so tests can run
// the pacing synthetically; pass quartz.NewReal() for interactive play.
func New(cfg *Config, logger *log.Logger, bus game.EventBus, clock quartz.Clock) *Session {
	return &Session{
		cfg:    cfg,
		logger: logger,
		clock:  clock,
		bus:    bus,
		ai:     game.NewAIEngine(),
	}
}

// StartNewGame abandons any game in progress, shuffles a fresh wall and
// starts play. The previous state is simply discarded; pending timers die
// on the sequence check. Returns the opening snapshot.
func (s *Session) StartNewGame() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	seed := s.cfg.Game.Seed
	if seed == 0 {
		seed = s.clock.Now().UnixNano()
	}
	s.gameID = gameid.Generate()
	s.logger.Info("starting new game",
		"game", s.gameID, "seed", seed, "human_seat", s.cfg.Game.HumanSeat)

	s.state = game.NewGame(s.cfg.SeatNames(), s.cfg.Game.HumanSeat, randutil.New(seed))
	s.published = 0
	s.publishLocked()
	s.continueLocked()
	return s.state
}

// State returns a snapshot of the live game state. The snapshot stays
// internally consistent forever; transitions never mutate committed slices.
func (s *Session) State() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameID returns the identifier minted for the current game, empty before
// the first StartNewGame.
func (s *Session) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// Stop cancels any scheduled work. The session can be restarted afterwards
// with StartNewGame.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// Discard plays a tile from a seat's hand. On success the action window
// opens and the window timer starts.
func (s *Session) Discard(seat, tileID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.Discard(seat, tileID)
	if err != nil {
		return err
	}
	s.logger.Debug("tile discarded", "seat", seat, "tile_id", tileID)
	s.commitLocked(next)
	return nil
}

// DeclareSelfDrawWin ends the game if the seat's hand is complete
func (s *Session) DeclareSelfDrawWin(seat int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.DeclareSelfDrawWin(seat)
	if err != nil {
		return err
	}
	s.commitLocked(next)
	return nil
}

// DeclareConcealedKong lays down four identical tiles from the seat's hand
func (s *Session) DeclareConcealedKong(seat int, kind tiles.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.DeclareConcealedKong(seat, kind)
	if err != nil {
		return err
	}
	s.commitLocked(next)
	return nil
}

// Claim presses one of the seat's pending claims. The claim competes
// against the AI seats' own responses; whoever wins the arbitration gets
// the tile, which may not be the caller.
func (s *Session) Claim(seat int, kind game.ClaimKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != game.ActionWindow || s.state.LastDiscard == nil {
		return game.ErrWrongPhase
	}
	if !s.state.HasClaim(seat, kind) {
		return game.ErrClaimNotAvailable
	}

	requests := append(s.aiRequestsLocked(), game.ClaimRequest{Seat: seat, Kind: kind})
	best, _ := game.Arbitrate(s.state.LastDiscard.Seat, requests)
	if best.Seat != seat || best.Kind != kind {
		s.logger.Info("claim outranked",
			"seat", seat, "kind", kind.String(),
			"winner_seat", best.Seat, "winner_kind", best.Kind.String())
	}
	s.stopTimerLocked()
	s.resolveLocked(best)
	return nil
}

// Pass withdraws a seat from the action window. If only AI seats remain
// in the claim set they act at once; if the set empties, the window closes
// on the usual delay as though nobody could ever act.
func (s *Session) Pass(seat int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.Pass(seat)
	if err != nil {
		return err
	}
	s.state = next
	s.publishLocked()

	human := s.state.HumanSeat()
	if human >= 0 && len(s.state.ClaimsFor(human)) > 0 {
		// Still waiting on the human; the window stays open.
		return nil
	}

	s.stopTimerLocked()
	if req, ok := game.Arbitrate(s.state.LastDiscard.Seat, s.aiRequestsLocked()); ok {
		s.resolveLocked(req)
		return nil
	}
	s.scheduleLocked(s.cfg.ClaimDelay(), s.sweepWindowLocked)
	return nil
}

// commitLocked installs a replacement state, publishes its fresh events and
// schedules whatever comes next
func (s *Session) commitLocked(next game.GameState) {
	s.state = next
	s.publishLocked()
	s.continueLocked()
}

// publishLocked pushes events appended since the last publish to the bus
func (s *Session) publishLocked() {
	for _, e := range s.state.FreshEvents(s.published) {
		s.bus.Publish(e)
	}
	s.published = s.state.EventCount
}

// continueLocked schedules the next piece of automatic play for the
// current phase: an AI turn, a window sweep, or nothing at all when the
// game is over or a human holds the turn
func (s *Session) continueLocked() {
	s.stopTimerLocked()

	switch s.state.Phase {
	case game.Playing:
		if s.state.CurrentPlayer().Human {
			return
		}
		s.scheduleLocked(s.cfg.TurnDelay(), s.aiTurnLocked)
	case game.ActionWindow:
		s.scheduleLocked(s.cfg.ClaimDelay(), s.sweepWindowLocked)
	case game.GameOver:
		s.logger.Info("game over",
			"game", s.gameID,
			"winner", s.state.Winner,
			"win_type", s.state.WinType.String(),
			"wall_left", s.state.WallCount())
	}
}

// scheduleLocked arms the session timer. The callback re-takes the lock and
// drops itself if the state moved on while it waited.
func (s *Session) scheduleLocked(d time.Duration, f func()) {
	seq := s.state.Seq
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state.Seq != seq {
			s.logger.Debug("dropping stale scheduled action",
				"scheduled_seq", seq, "live_seq", s.state.Seq)
			return
		}
		s.timer = nil
		f()
	})
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// aiTurnLocked makes the scheduled move for the AI seat holding the turn
func (s *Session) aiTurnLocked() {
	seat := s.state.CurrentTurn
	d := s.ai.DecideTurn(s.state.Players[seat])

	var (
		next game.GameState
		err  error
	)
	switch d.Action {
	case game.ActionSelfDrawWin:
		next, err = s.state.DeclareSelfDrawWin(seat)
	case game.ActionConcealedKong:
		next, err = s.state.DeclareConcealedKong(seat, d.KongKind)
	default:
		next, err = s.state.Discard(seat, d.TileID)
	}
	if err != nil {
		s.logger.Error("ai turn rejected", "seat", seat, "err", err)
		return
	}
	s.commitLocked(next)
}

// sweepWindowLocked closes an action window whose timer ran out. AI claims
// resolve by priority; an untouched empty set advances play. A window the
// human still needs to answer stays open, with one exception: an AI win
// that would outrank anything the human can press fires immediately.
func (s *Session) sweepWindowLocked() {
	if s.state.Phase != game.ActionWindow || s.state.LastDiscard == nil {
		return
	}
	discarder := s.state.LastDiscard.Seat
	requests := s.aiRequestsLocked()

	human := s.state.HumanSeat()
	if human >= 0 && len(s.state.ClaimsFor(human)) > 0 {
		win, ok := game.Arbitrate(discarder, requests)
		if !ok || win.Kind != game.ClaimWin {
			return
		}
		if s.state.HasClaim(human, game.ClaimWin) {
			all := append(requests, game.ClaimRequest{Seat: human, Kind: game.ClaimWin})
			if best, _ := game.Arbitrate(discarder, all); best.Seat == human {
				// The human's win would take precedence; keep waiting.
				return
			}
		}
		s.resolveLocked(win)
		return
	}

	if req, ok := game.Arbitrate(discarder, requests); ok {
		s.resolveLocked(req)
		return
	}

	next, err := s.state.Advance()
	if err != nil {
		s.logger.Error("advance failed", "err", err)
		return
	}
	s.commitLocked(next)
}

// aiRequestsLocked collects the greedy claim response of every AI seat in
// the pending set
func (s *Session) aiRequestsLocked() []game.ClaimRequest {
	var requests []game.ClaimRequest
	for seat := 0; seat < game.NumSeats; seat++ {
		if s.state.Players[seat].Human {
			continue
		}
		if kind, ok := s.ai.RespondToClaim(s.state.ClaimsFor(seat)); ok {
			requests = append(requests, game.ClaimRequest{Seat: seat, Kind: kind})
		}
	}
	return requests
}

// resolveLocked executes an arbitrated claim and carries on
func (s *Session) resolveLocked(req game.ClaimRequest) {
	next, err := s.state.ResolveClaim(req.Seat, req.Kind)
	if err != nil {
		s.logger.Error("claim resolution rejected",
			"seat", req.Seat, "kind", req.Kind.String(), "err", err)
		return
	}
	s.logger.Debug("claim resolved", "seat", req.Seat, "kind", req.Kind.String())
	s.commitLocked(next)
}
