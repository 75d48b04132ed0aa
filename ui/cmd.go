package ui

import (
	"context"
	"evilboard/src"
	"evilboard/src/config"
	"evilboard/src/diag"
	"evilboard/src/logx"
	clic "evilboard/ui/cli"
	"evilboard/ui/gui"
	"evilboard/ui/gui/gbase/gconf"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const logfile string = "evilboard.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("debug"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// boardConfig loads --config (or path) and applies the command line
// overrides on top.
func boardConfig(c *cli.Command, path string) (*config.Config, error) {
	if p := c.String("config"); p != "" {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if fen := c.String("fen"); fen != "" {
		cfg.Position = config.PositionFromString(fen)
	}
	if o := c.String("orientation"); o != "" {
		cfg.Orientation = o
	}
	if c.Bool("spare") {
		cfg.SparePieces = true
	}
	return cfg, nil
}

func withLog(c *cli.Command, run func(l *logx.Logx) error) error {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("error open logfile: %v", err)
		return nil
	}
	defer file.Close()
	l := GetLogger(file, c)
	defer l.Sync() //nolint:errcheck
	return run(l)
}

func RunGUI(c *cli.Command) error {
	return withLog(c, func(l *logx.Logx) error {
		conf, err := gconf.NewGUIConfig(c.String("gui-config"))
		if err != nil {
			return err
		}
		if c.Bool("legal") {
			conf.Legal = true
		}
		cfg, err := boardConfig(c, conf.Board)
		if err != nil {
			return err
		}
		cfg.Draggable = true
		if !c.IsSet("fen") && !cfg.Position.IsSet() {
			cfg.Position = config.PositionFromString("start")
		}
		g, err := gui.NewGUI(cfg, conf, l.Named("gui"))
		if err != nil {
			return err
		}
		return g.Run()
	})
}

func RunCLI(c *cli.Command) error {
	return withLog(c, func(l *logx.Logx) error {
		cfg, err := boardConfig(c, "")
		if err != nil {
			return err
		}
		cfg.Draggable = true
		if !cfg.Position.IsSet() {
			cfg.Position = config.PositionFromString("start")
		}

		clic.EnableANSI()
		t := clic.NewTerm(os.Stdout, c.Bool("trace"), l.Named("term"))
		b, err := src.NewBoard(cfg, t, clic.EventHooks(os.Stdout), diag.FromName(cfg.ShowErrors, l), l.Named("board"))
		if err != nil {
			return err
		}
		defer b.Destroy()
		return clic.NewCLI(b, t, os.Stdin, os.Stdout).Run()
	})
}

func RunEvilBoard() error {
	cf := &cli.StringFlag{
		Name:  "config",
		Usage: "path to a board config (.json, .yaml)",
	}
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "starting position, FEN placement or \"start\"",
	}
	of := &cli.StringFlag{
		Name:  "orientation",
		Usage: "white or black",
	}
	sf := &cli.BoolFlag{
		Name:  "spare",
		Usage: "show spare pieces",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level: debug, info, warn, error",
	}
	cnf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	tf := &cli.BoolFlag{
		Name:  "trace",
		Usage: "print every animation step",
	}
	gcf := &cli.StringFlag{
		Name:  "gui-config",
		Usage: "path to the window config",
		Value: gconf.DefaultFile,
	}
	legal := &cli.BoolFlag{
		Name:  "legal",
		Usage: "only allow legal chess moves",
	}
	logff := []cli.Flag{df, lf, cnf}
	boardff := []cli.Flag{cf, ff, of, sf}
	cliff := append(append([]cli.Flag{tf}, boardff...), logff...)
	guiff := append(append([]cli.Flag{gcf, legal}, boardff...), logff...)

	runGUI := func(ctx context.Context, c *cli.Command) error {
		if err := RunGUI(c); err != nil {
			fmt.Printf("error GUI: %v\n", err)
		}
		return nil
	}

	return (&cli.Command{
		Name:  "evilboard",
		Usage: "animated chessboard widget",
		Flags: guiff,
		Commands: []*cli.Command{
			{
				Name:   "gui",
				Usage:  "open the board in a window",
				Flags:  guiff,
				Action: runGUI,
			},
			{
				Name:  "cli",
				Usage: "drive the board from the terminal",
				Flags: cliff,
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := RunCLI(c); err != nil {
						fmt.Printf("error evilboard: %v\n", err)
					}
					return nil
				},
			},
			{
				Name:      "plan",
				Usage:     "print the animation between two positions",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Value: "start", Usage: "position before"},
					&cli.StringFlag{Name: "to", Required: true, Usage: "position after"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return clic.PrintPlan(os.Stdout, c.String("from"), c.String("to"))
				},
			},
			{
				Name:      "fen",
				Usage:     "print the canonical form of a position",
				ArgsUsage: "<fen>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("want exactly one position")
					}
					return clic.PrintFEN(os.Stdout, c.Args().First())
				},
			},
		},
		Action: runGUI,
	}).Run(context.Background(), os.Args)
}
