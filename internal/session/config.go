package session

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/mahjong-cli/internal/game"
)

// Config represents the complete session configuration
type Config struct {
	Game GameSettings `hcl:"game,block"`
	Bots []BotConfig  `hcl:"bot,block"`
	Log  *LogSettings `hcl:"log,block"`
}

// GameSettings contains game-level configuration
type GameSettings struct {
	PlayerName   string `hcl:"player_name,optional"`
	HumanSeat    int    `hcl:"human_seat,optional"`
	Seed         int64  `hcl:"seed,optional"`
	ClaimDelayMS int    `hcl:"claim_delay_ms,optional"`
	TurnDelayMS  int    `hcl:"turn_delay_ms,optional"`
}

// BotConfig names an AI opponent. Bots fill the non-human seats clockwise
// in the order their blocks appear.
type BotConfig struct {
	Name string `hcl:"name,label"`
}

// LogSettings contains logging configuration
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			PlayerName:   "You",
			HumanSeat:    0,
			ClaimDelayMS: 1200,
			TurnDelayMS:  600,
		},
		Bots: []BotConfig{
			{Name: "Ando"},
			{Name: "Botan"},
			{Name: "Chie"},
		},
		Log: &LogSettings{
			Level: "info",
			File:  "mahjong.log",
		},
	}
}

// LoadConfig loads session configuration from an HCL file. A missing file
// is not an error; the defaults apply.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Game.PlayerName == "" {
		config.Game.PlayerName = "You"
	}
	if config.Game.ClaimDelayMS == 0 {
		config.Game.ClaimDelayMS = 1200
	}
	if config.Game.TurnDelayMS == 0 {
		config.Game.TurnDelayMS = 600
	}

	if len(config.Bots) == 0 {
		config.Bots = DefaultConfig().Bots
	}

	if config.Log == nil {
		config.Log = &LogSettings{}
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.File == "" {
		config.Log.File = "mahjong.log"
	}

	return &config, nil
}

// Validate validates the session configuration
func (c *Config) Validate() error {
	if c.Game.HumanSeat < 0 || c.Game.HumanSeat >= game.NumSeats {
		return fmt.Errorf("human seat must be between 0 and %d, got %d", game.NumSeats-1, c.Game.HumanSeat)
	}
	if len(c.Bots) != game.NumSeats-1 {
		return fmt.Errorf("exactly %d bots must be configured, got %d", game.NumSeats-1, len(c.Bots))
	}
	for _, bot := range c.Bots {
		if bot.Name == "" {
			return fmt.Errorf("bot names cannot be empty")
		}
	}
	if c.Game.ClaimDelayMS < 0 || c.Game.TurnDelayMS < 0 {
		return fmt.Errorf("delays cannot be negative")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.Log != nil && !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// ClaimDelay returns how long an action window stays open before the
// session acts for everyone who has not spoken
func (c *Config) ClaimDelay() time.Duration {
	return time.Duration(c.Game.ClaimDelayMS) * time.Millisecond
}

// TurnDelay returns the pause before an AI seat takes its turn
func (c *Config) TurnDelay() time.Duration {
	return time.Duration(c.Game.TurnDelayMS) * time.Millisecond
}

// SeatNames returns the display name for every seat: the human's name at
// the human seat and bot names filling the rest clockwise
func (c *Config) SeatNames() [game.NumSeats]string {
	var names [game.NumSeats]string
	bot := 0
	for seat := 0; seat < game.NumSeats; seat++ {
		if seat == c.Game.HumanSeat {
			names[seat] = c.Game.PlayerName
			continue
		}
		if bot < len(c.Bots) {
			names[seat] = c.Bots[bot].Name
			bot++
		} else {
			names[seat] = fmt.Sprintf("Bot %d", seat)
		}
	}
	return names
}
