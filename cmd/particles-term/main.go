// Command particles-term renders a particle-life system in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particles/config"
	"github.com/olivierh59500/particles/sim"
)

var logFile = flag.String("logfile", "", "Write logs to file (the terminal is taken by the view)")

func run(v *Viewer, tps int) {
	ticker := time.NewTicker(time.Second / time.Duration(max(tps, 1)))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			v.system.Step()
			v.draw()
		}
	}
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	out := io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "particles-term: ", log.LstdFlags)

	file, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	opts, err := file.SimOptions()
	if err != nil {
		log.Fatal(err)
	}
	cfg := file.SimConfig()
	system, err := sim.New(cfg, append(opts, sim.WithLogger(logger))...)
	if err != nil {
		log.Fatal(err)
	}
	system.Start()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(NewViewer(screen, system, logger, time.Now().UnixNano()), file.View.TPS)
}
