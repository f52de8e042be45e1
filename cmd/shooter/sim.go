package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/games/zaptastic"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagFrames  int
	flagTrace   string
	flagSave    bool
	flagVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Play a session without a terminal UI. An autopilot steers toward the
nearest enemy and fires when lined up. The run ends after --frames frames or
when the ship is destroyed.

With --trace every frame's input and state is written as a stream of
msgpack records. Two runs with the same seed produce identical traces.

Examples:
  shooter sim --frames 3600 --seed 7
  shooter sim --seed 7 --trace run.msgpack
  shooter sim --difficulty hard --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 60*60, "Maximum number of frames to simulate")
	simCmd.Flags().StringVar(&flagTrace, "trace", "", "Write a msgpack frame trace to this file")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run in the scores database")
	simCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every wave")
	addGameDataFlags(simCmd)
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		logger.Fatal("bad difficulty", "error", err)
	}
	applyGameData()
	cfg, cats, err := zaptastic.Prepare()
	if err != nil {
		logger.Fatal("cannot load game data", "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim, err := zaptastic.NewSimulation(cfg, cats, zaptastic.Options{
		TickRate: flagFPS,
		Seed:     seed,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("cannot start simulation", "error", err)
	}

	var trace *zaptastic.TraceWriter
	if flagTrace != "" {
		f, err := os.Create(flagTrace)
		if err != nil {
			logger.Fatal("cannot create trace file", "error", err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		trace = zaptastic.NewTraceWriter(w)
	}

	logger.Info("simulation started", "seed", seed, "frames", flagFrames, "difficulty", flagDifficulty)
	start := time.Now()

	ap := zaptastic.NewAutopilot(cfg.Player.TiltStep)
	for i := 0; i < flagFrames; i++ {
		in := ap.Next(sim)
		res := sim.Step(in)
		if trace != nil {
			if err := trace.Write(in, sim.Snapshot()); err != nil {
				logger.Error("cannot write trace", "error", err)
				trace = nil
			}
		}
		if res.GameOver {
			break
		}
	}

	report := sim.Report()
	snap := sim.Snapshot()
	logger.Info("simulation finished",
		"frames", report.Frames,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"score", sim.Score(),
		"alive", sim.Player().Alive,
		"level", report.Level,
		"kills", report.Kills,
		"escaped", report.Escaped,
		"hash", fmt.Sprintf("%016x", snap.Hash()),
	)

	if !flagSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "error", err)
		return
	}
	defer store.Close()

	if sim.Score() > 0 {
		if _, err := store.SaveScore(gameID, sim.Score()); err != nil {
			logger.Error("cannot save score", "error", err)
		}
	}
	id, err := store.SaveRun(tui.NewRunRecord(gameID, seed, sim.Score(), report, tui.RunInfo{
		Source:     storage.SourceSim,
		Difficulty: flagDifficulty,
	}))
	if err != nil {
		logger.Error("cannot save run", "error", err)
		return
	}
	logger.Info("run saved", "id", id)
}
