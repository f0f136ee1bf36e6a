// Command sim-cli runs a scripted match against the engine and prints a
// summary. It is a smoke driver for the deterministic core: the same seed
// always prints the same report.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jtsang27/crust-sim/internal/game"
	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/game/entity"
	"github.com/jtsang27/crust-sim/internal/game/geom"
)

var (
	seed      = flag.Uint64("seed", 42, "match seed")
	cardsFile = flag.String("cards", "", "optional YAML card definitions (default: built-in set)")
	replayDir = flag.String("replay-dir", "", "save the match replay here when set")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	provider := cards.Default()
	if *cardsFile != "" {
		provider, err = cards.LoadFile(*cardsFile)
		if err != nil {
			logger.Fatal("failed to load card definitions", zap.Error(err))
		}
	}

	engine := game.NewEngine(logger, provider)

	deck := []string{"Knight", "Archers", "Giant", "Musketeer", "Fireball", "Arrows", "Cannon", "Minions"}
	matchID, err := engine.CreateMatch(*seed, map[entity.PlayerID][]string{
		entity.Player1: deck,
		entity.Player2: deck,
	})
	if err != nil {
		logger.Fatal("failed to create match", zap.Error(err))
	}

	fmt.Printf("=== Scripted Match (seed %d) ===\n\n", *seed)

	// One deploy per second for the opening three seconds, alternating
	// sides, then let the match run.
	script := map[int][]game.Action{
		60:  {game.PlayCard{PlayerID: entity.Player1, CardName: "Knight", Level: 11, Position: geom.NewVec2(14, 8)}},
		120: {game.PlayCard{PlayerID: entity.Player2, CardName: "Archers", Level: 11, Position: geom.NewVec2(18, 10)}},
		180: {game.PlayCard{PlayerID: entity.Player1, CardName: "Giant", Level: 11, Position: geom.NewVec2(14, 6)}},
	}

	for tick := 0; tick < 600; tick++ {
		actions := script[tick]
		results, err := engine.Step(matchID, actions)
		if err != nil {
			logger.Fatal("step failed", zap.Error(err))
		}
		for _, res := range results {
			if res.Err != nil {
				logger.Warn("action rejected", zap.Error(res.Err))
				continue
			}
			if play, ok := res.Action.(game.PlayCard); ok {
				fmt.Printf("[tick %4d] %s plays %s at (%.0f, %.0f)\n",
					tick, play.PlayerID, play.CardName, play.Position.X, play.Position.Y)
			}
		}
	}

	err = engine.WithState(matchID, func(s *game.GameState) error {
		fmt.Printf("\n=== Match Summary ===\n")
		fmt.Printf("Ticks: %d  Match time: %.2fs\n", s.Tick, s.MatchTime)
		for _, player := range []entity.PlayerID{entity.Player1, entity.Player2} {
			ps, err := s.Player(player)
			if err != nil {
				return err
			}
			fmt.Printf("%s: elixir %.2f, tower hp %.0f/%.0f\n",
				player, ps.Elixir.Amount, s.RemainingTowerHP(player), ps.InitialTowerHP)
		}

		fmt.Printf("\n=== Active Entities ===\n")
		for _, id := range s.Entities.SortedIDs() {
			e := s.Entities.Get(id)
			fmt.Printf("Entity %d: %s %s hp %.0f/%.0f pos (%.1f, %.1f)\n",
				e.ID, e.Owner, e.Kind, e.HP, e.MaxHP, e.Position.X, e.Position.Y)
		}

		fmt.Printf("\nState checksum: %s\n", game.Capture(s).Checksum())
		return nil
	})
	if err != nil {
		logger.Fatal("failed to summarize match", zap.Error(err))
	}

	if *replayDir != "" {
		if err := engine.SaveReplay(matchID, *replayDir); err != nil {
			logger.Fatal("failed to save replay", zap.Error(err))
		}
	}
}
