package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andresmejia3/endcrypt/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveCfg = server.DefaultConfig()
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the image processing HTTP API",
	Long:  `Starts an HTTP server exposing POST /api/process-image (multipart image, level, key) and POST /api/report, optionally serving a static front end.`,
	Run: func(cmd *cobra.Command, args []string) {
		if serveCfg.Workers < 0 {
			log.Fatal().Msg("number of workers cannot be negative")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.New(serveCfg).ListenAndServe(ctx); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveCfg.Addr, "addr", serveCfg.Addr, "Listen address")
	serveCmd.Flags().StringVar(&serveCfg.StaticDir, "static", "", "Directory of static files to serve at /")
	serveCmd.Flags().IntVarP(&serveCfg.DefaultLevel, "level", "l", serveCfg.DefaultLevel, "Level used when a request omits it")
	serveCmd.Flags().Float64VarP(&serveCfg.DefaultKey, "key", "k", serveCfg.DefaultKey, "Key used when a request omits it")
	serveCmd.Flags().IntVar(&serveCfg.CanvasSize, "size", serveCfg.CanvasSize, "Canvas size uploads are resized to")
	serveCmd.Flags().IntVarP(&serveCfg.Workers, "workers", "w", 0, "Number of workers per permutation round (default: number of CPUs)")
	serveCmd.Flags().IntVar(&serveCfg.MaxLevel, "max-level", serveCfg.MaxLevel, "Highest level a request may ask for")
	serveCmd.Flags().Int64Var(&serveCfg.MaxUploadBytes, "max-upload", serveCfg.MaxUploadBytes, "Maximum request body size in bytes")
}
