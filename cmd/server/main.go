package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/engine"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "chess-backend",
		Short:        "Move engine and game server for the drag-and-drop chess board",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newBoardCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
	return cmd
}

func serve(cfg config.Config) error {
	log.SetLevel(logLevel(cfg.LogLevel))

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(cfg.Game.Clock(), cfg.Game.Interval())
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager)

	controller.SetupRoutes(app, gameService, cfg.Server.AllowedOrigins)

	log.Infof("listening on %s", cfg.Server.Addr)
	return app.Listen(cfg.Server.Addr)
}

func logLevel(name string) log.Level {
	switch name {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	}
	return log.LevelInfo
}

func newBoardCmd() *cobra.Command {
	var fen string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print a position and the moves available to the side to move",
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := engine.InitialPosition()
			if fen != "" {
				var err error
				if pos, err = engine.ParseFEN(fen); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, pos)
			moves := engine.GenerateLegalMoves(pos).Moves()
			fmt.Fprintf(out, "%s to move, %d moves:", pos.SideToMove, len(moves))
			for _, m := range moves {
				fmt.Fprintf(out, " %s", m)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&fen, "fen", "", "start from this FEN instead of the initial position")
	return cmd
}
