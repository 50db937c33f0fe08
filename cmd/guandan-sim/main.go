// Command guandan-sim runs a full Guan Dan match with four greedy agents
// and logs the play-by-play to the console.
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/guandan/engine"
	"github.com/jason-s-yu/guandan/internal/game"
)

func main() {
	_ = godotenv.Load() // optional .env; fall back to the environment

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(getenv("SIM_LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	seed, err := strconv.ParseUint(getenv("SIM_SEED", ""), 10, 64)
	if err != nil || seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	m := game.NewMatch(game.Config{
		Seed:  seed,
		Rules: engine.DefaultRules(),
		Names: [engine.NumPlayers]string{
			"Agent 1 (A)", "Agent 2 (B)", "Agent 3 (A)", "Agent 4 (B)",
		},
		Logger: log,
	})

	m.Subscribe(func(ev game.MatchEvent) {
		switch ev.Type {
		case game.EventPlayerPlayed:
			log.WithFields(logrus.Fields{
				"player": ev.Player.Name,
				"combo":  ev.Combo,
				"rank":   ev.Rank,
			}).Infof("plays %v", ev.Cards)
		case game.EventPlayerPassed:
			log.Infof("%s passes", ev.Player.Name)
		case game.EventTrickWon:
			log.Info("trick closed; lead returns to the last player to play")
		case game.EventPlayerFinished:
			log.Infof("%s has finished", ev.Player.Name)
		case game.EventHandScored:
			log.WithField("payload", ev.Payload).Info("hand scored")
		}
	})

	log.WithField("seed", seed).Info("starting simulation")
	winner, err := m.Run(context.Background())
	if err != nil {
		log.WithError(err).Fatal("simulation aborted")
	}
	log.WithFields(logrus.Fields{
		"winning_team": winner,
		"hands":        m.HandNumber,
	}).Info("simulation complete")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
