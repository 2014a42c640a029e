package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particles/config"
	"github.com/olivierh59500/particles/headless"
	"github.com/olivierh59500/particles/sim"
)

var (
	headlessMode = flag.Bool("headless", false, "Run without a window")
	maxTicks     = flag.Int("max-ticks", 0, "Stop after N ticks (0 = run until interrupted, headless only)")
	logEvery     = flag.Int("log", 0, "Log system state every N ticks (0 = disabled, headless only)")
	saveRules    = flag.String("save-rules", "", "Write the rule matrix to this file after construction")
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "particles: ", log.LstdFlags)

	file, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	opts, err := file.SimOptions()
	if err != nil {
		log.Fatal(err)
	}
	cfg := file.SimConfig()

	if *headlessMode {
		opts = append(opts, sim.WithLogger(logger))
		system, err := sim.New(cfg, opts...)
		if err != nil {
			log.Fatal(err)
		}
		writeRules(system, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		headless.Run(ctx, system, *maxTicks, *logEvery, logger, os.Stdout)
		return
	}

	// Initialize simulation from the resolved parameters
	game, err := NewSimulation(float64(file.View.Width), float64(file.View.Height), cfg, opts, logger)
	if err != nil {
		log.Fatal(err)
	}
	writeRules(game.System, logger)

	// Set up Ebitengine game
	ebiten.SetWindowSize(file.View.Width, file.View.Height)
	ebiten.SetWindowTitle("Particle Life Simulation")
	ebiten.SetTPS(file.View.TPS)

	// Run the game loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func writeRules(system *sim.System, logger *log.Logger) {
	if *saveRules == "" {
		return
	}
	if err := system.Rules().Save(*saveRules); err != nil {
		log.Fatal(err)
	}
	logger.Printf("rules saved to %s", *saveRules)
}
