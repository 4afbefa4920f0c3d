package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/automoto/pitchclash/assets"
	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/hud"
	"github.com/automoto/pitchclash/network"
	"github.com/automoto/pitchclash/persistence"
	"github.com/automoto/pitchclash/session"
	"github.com/automoto/pitchclash/shared/protocol"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const appName = "pitchclash"

type MatchFlags struct {
	Countdown    int           `help:"Countdown start value." default:"5"`
	RespawnDelay time.Duration `help:"Delay before a player standing in a goal respawns." default:"3s"`
	WinningScore int           `help:"Score that ends the match, 0 plays forever." default:"0"`
	TickRate     int           `help:"Simulation steps per second." default:"60"`
	Arena        string        `help:"TMX arena file, the embedded pitch when empty."`
	Stdin        bool          `help:"Read pointer commands (press|move|release X Y) from standard input." default:"true" negatable:""`
}

func (f MatchFlags) apply() {
	cfg.Match.CountdownSeconds = f.Countdown
	cfg.Match.RespawnDelay = f.RespawnDelay
	cfg.Match.WinningScore = f.WinningScore
	cfg.Match.TickRate = f.TickRate
	cfg.Arena.Path = f.Arena
}

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Host struct {
		MatchFlags `embed:""`
		Port uint `help:"Port to listen on." default:"7777"`
	} `cmd:"" help:"Host a match and wait for an opponent."`

	Join struct {
		MatchFlags `embed:""`
		Address string `arg:"" optional:"" help:"Host address." default:"127.0.0.1"`
		Port    uint   `help:"Host port." default:"7777"`
	} `cmd:"" help:"Join a hosted match."`

	Results struct{} `cmd:"" help:"Print the results of past matches."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name(appName),
		kong.Description("a two-player ball sport over websockets"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if err := protocol.RegisterComponents(); err != nil {
		writeError(fmt.Errorf("register network components: %w", err))
	}

	var err error
	switch ctx.Command() {
	case "host":
		CLI.Host.apply()
		cfg.Net.Port = CLI.Host.Port
		err = hostCommand(CLI.Host.MatchFlags)
	case "join", "join <address>":
		CLI.Join.apply()
		cfg.Net.HostAddress = CLI.Join.Address
		cfg.Net.Port = CLI.Join.Port
		err = joinCommand(CLI.Join.MatchFlags)
	case "results":
		err = resultsCommand()
	}
	if err != nil {
		writeError(err)
	}
}

func hostCommand(flags MatchFlags) error {
	results, err := persistence.Open(appName)
	if err != nil {
		return err
	}

	host := network.NewHost(log.Logger)
	if err := host.StartAsHost(cfg.Net.Port); err != nil {
		return err
	}
	return play(host, flags, results)
}

func joinCommand(flags MatchFlags) error {
	client := network.NewClient(log.Logger)
	client.ConnectAsClient(cfg.Net.HostAddress, cfg.Net.Port)
	return play(client, flags, nil)
}

// play runs the session until the match ends, the peer leaves or the
// process is interrupted.
func play(transport network.Transport, flags MatchFlags, results *persistence.Results) error {
	layout, err := assets.LoadArena(cfg.Arena.Path)
	if err != nil {
		_ = transport.Close()
		return err
	}

	opts := session.Options{
		Layout:   layout,
		TickRate: cfg.Match.TickRate,
		HUD:      hud.Factory(log.Logger),
	}
	if results != nil {
		opts.Results = results
	}
	s := session.New(transport, opts, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return transport.Close()
	})
	if flags.Stdin {
		// Not part of the group: a blocked read must not hold up shutdown.
		go readPointer(os.Stdin, s, log.Logger)
	}

	err = g.Wait()
	if errors.Is(err, session.ErrPeerLeft) {
		log.Info().Err(err).Msg("match ended")
		return nil
	}
	return err
}

func resultsCommand() error {
	results, err := persistence.Open(appName)
	if err != nil {
		return err
	}
	saved, err := results.Load()
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Println("no matches played yet")
		return nil
	}
	for _, r := range saved {
		fmt.Printf("%s  %d - %d  winner: %s  rounds: %d\n",
			r.FinishedAt.Format(time.RFC3339), r.Left, r.Right, r.Winner, r.Rounds)
	}
	return nil
}
