package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mastercactapus/xyplot/coord"
	"github.com/mastercactapus/xyplot/machine"
	"github.com/mastercactapus/xyplot/machine/grbl"
	"github.com/mastercactapus/xyplot/pattern"
	"github.com/mastercactapus/xyplot/rendezvous"
	"github.com/mastercactapus/xyplot/spjs"
)

func main() {
	log.SetFlags(log.Lshortfile)

	configPath := flag.String("config", "", "Path to a YAML config file.")
	port := flag.String("port", "", "Serial port path (or SPJS port name).")
	baud := flag.Int("baud", 0, "Serial baud rate.")
	spjsURL := flag.String("spjs", "", "Websocket URL of an SPJS serial bridge to use instead of a local port.")
	patternName := flag.String("pattern", "", "Pattern name; empty uses the default.")
	feed := flag.Float64("feed", 0, "Feed rate in mm/min.")
	dwell := flag.Int("dwell", 0, "Pause between moves, in milliseconds.")
	width := flag.Float64("width", 0, "Work area width.")
	height := flag.Float64("height", 0, "Work area height.")
	margin := flag.Float64("margin", 0, "Work area margin.")
	idleTimeout := flag.Int("idle-timeout", 0, "Bound on each idle wait, in milliseconds (0 waits forever).")
	noHome := flag.Bool("no-home", false, "Skip the homing cycle.")
	noWait := flag.Bool("no-wait", false, "Queue moves without waiting for idle between them.")
	verbose := flag.Bool("verbose", false, "Echo device status while waiting for idle.")
	list := flag.Bool("list", false, "List available patterns and exit.")
	preview := flag.Bool("preview", false, "Print the pattern's points instead of driving hardware.")
	stats := flag.Bool("stats", false, "With -preview, print coverage statistics instead of points.")
	useRendezvous := flag.Bool("rendezvous", false, "Wait for the coordination server's start token before moving.")
	syncAddr := flag.String("sync-addr", "", "Coordination server announce endpoint.")
	aliveAddr := flag.String("alive-addr", "", "Coordination server start-token endpoint.")
	identity := flag.String("identity", "", "Identity announced to the coordination server.")
	addr := flag.String("addr", "", "Address to bind the monitor API to (empty disables it).")
	webDir := flag.String("web", "", "Directory of static monitor UI files to serve.")
	flag.Parse()

	if *list {
		for _, name := range pattern.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	applyFlagOverrides(&cfg, *port, *baud, *spjsURL, *patternName, *feed, *dwell,
		*width, *height, *margin, *idleTimeout, *noWait)
	if *syncAddr != "" {
		cfg.Rendezvous.SyncAddr = *syncAddr
	}
	if *aliveAddr != "" {
		cfg.Rendezvous.AliveAddr = *aliveAddr
	}
	if *identity != "" {
		cfg.Rendezvous.Identity = *identity
	}

	area, err := coord.NewArea(cfg.Width, cfg.Height, cfg.Margin)
	if err != nil {
		log.Fatal(err)
	}
	v, err := pattern.Resolve(cfg.Pattern)
	if err != nil {
		log.Fatal(err)
	}

	if *preview {
		if err := printPreview(area, v, *stats); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var monitor *api
	if *addr != "" {
		monitor = newAPI(area, *webDir)
		go func() {
			log.Printf("monitor API on %s", *addr)
			if err := http.ListenAndServe(*addr, monitor); err != nil {
				log.Println("ERROR: monitor:", err)
			}
		}()
	}

	ctrlCfg := grbl.Config{
		WakeDelay:    ms(cfg.WakeDelayMs),
		PollInterval: ms(cfg.PollIntervalMs),
		IdleTimeout:  ms(cfg.IdleTimeoutMs),
		OnStatus: func(st grbl.Status) {
			if *verbose {
				log.Println(st)
			}
			if monitor != nil {
				monitor.broadcastStatus(st)
			}
		},
	}

	ctrl, err := openController(cfg, ctrlCfg)
	if err != nil {
		log.Fatal(err)
	}

	if !*noHome {
		log.Println("homing")
		if err = ctrl.Home(); err != nil {
			ctrl.Close()
			log.Fatal(err)
		}
	}

	runner := machine.NewRunner(ctrl, area)
	runner.FeedRate = cfg.FeedRate
	runner.Dwell = ms(cfg.DwellMs)
	runner.WaitIdle = !cfg.NoWait

	if *useRendezvous {
		client := &rendezvous.Client{
			SyncAddr:  cfg.Rendezvous.SyncAddr,
			AliveAddr: cfg.Rendezvous.AliveAddr,
			Identity:  cfg.Rendezvous.Identity,
		}
		if err = client.Connect(ctx); err != nil {
			ctrl.Close()
			log.Fatal(err)
		}
		defer client.Close()
		runner.Rendezvous = client
	}

	log.Printf("running pattern %s over %.0fx%.0f (margin %.0f)",
		v.Name, cfg.Width, cfg.Height, cfg.Margin)
	if err = runner.RunPattern(ctx, v); err != nil {
		if ctx.Err() != nil {
			log.Println("interrupted; machine reset and returned to origin")
			return
		}
		log.Fatal(err)
	}
	log.Println("done")
}

// openController picks a transport: a local serial port, or an SPJS
// bridge when a websocket URL is configured.
func openController(cfg Config, ctrlCfg grbl.Config) (*grbl.Controller, error) {
	if cfg.SPJS != "" {
		t, err := spjs.Dial(cfg.SPJS, cfg.Port, cfg.Baud, ms(cfg.ReadTimeoutMs))
		if err != nil {
			return nil, err
		}
		return grbl.New(t, ctrlCfg)
	}
	return grbl.Open(cfg.Port, cfg.Baud, ms(cfg.ReadTimeoutMs), ctrlCfg)
}

func printPreview(area coord.Area, v pattern.Variant, stats bool) error {
	seq, err := v.Sequence(area)
	if err != nil {
		return err
	}
	pts, err := pattern.Collect(seq)
	if err != nil {
		return err
	}
	if stats {
		cov, err := pattern.Coverage(pts)
		if err != nil {
			return err
		}
		fmt.Printf("points: %d\ntriangles: %d\narea: %.1f\nmax gap edge: %.2f\n",
			cov.Points, cov.Triangles, cov.Area, cov.MaxEdge)
		return nil
	}
	for _, p := range pts {
		fmt.Printf("%.3f %.3f\n", p.X, p.Y)
	}
	return nil
}

func applyFlagOverrides(cfg *Config, port string, baud int, spjsURL, patternName string,
	feed float64, dwell int, width, height, margin float64, idleTimeout int, noWait bool) {
	if port != "" {
		cfg.Port = port
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	if spjsURL != "" {
		cfg.SPJS = spjsURL
	}
	if patternName != "" {
		cfg.Pattern = patternName
	}
	if feed != 0 {
		cfg.FeedRate = feed
	}
	if dwell != 0 {
		cfg.DwellMs = dwell
	}
	if width != 0 {
		cfg.Width = width
	}
	if height != 0 {
		cfg.Height = height
	}
	if margin != 0 {
		cfg.Margin = margin
	}
	if idleTimeout != 0 {
		cfg.IdleTimeoutMs = idleTimeout
	}
	if noWait {
		cfg.NoWait = true
	}
}
