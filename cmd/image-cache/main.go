package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-image-cache/internal/cache"
	"go-image-cache/internal/config"
	"go-image-cache/internal/models"
	"go-image-cache/internal/prompt"
	"go-image-cache/internal/resolver"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "image-cache",
		Short:        "Quiz illustration resolver",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCmd(), newKeyCmd(), newPromptCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP resolver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Initialize composition root with all dependencies
	root, err := NewCompositionRoot(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	go func() {
		var err error
		if socketPath := root.Config.Server.SocketPath; socketPath != "" {
			err = root.HTTPServer.StartUnixSocket(socketPath)
		} else {
			err = root.HTTPServer.Start(root.Config.Server.Address)
		}
		if err != nil {
			root.Logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := root.HTTPServer.Stop(shutdownCtx); err != nil {
		root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	root.Logger.Info("Server exited")
	return nil
}

// bindRequestFlags registers the request fields shared by the preview commands
func bindRequestFlags(cmd *cobra.Command, req *models.ImageRequest, style *string) {
	flags := cmd.Flags()
	flags.StringVar(&req.Era, "era", "", "historical era, e.g. 고조선")
	flags.StringVar(&req.Topic, "topic", "", "quiz topic")
	flags.StringSliceVar(&req.Keywords, "keyword", nil, "keyword, repeatable or comma separated")
	flags.StringVar(&req.Size, "size", "", "image size (1024x1024, 1792x1024, 1024x1792)")
	flags.StringVar(&req.Quality, "quality", "", "image quality (standard, hd)")
	flags.StringVar(&req.StyleHints, "style-hints", "", "free-form style notes")
	flags.StringVar(style, "style", "", "prompt variant (realistic, chibi)")
}

func newKeyCmd() *cobra.Command {
	var (
		req   models.ImageRequest
		style string
	)
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the cache key and object path prefix for a request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Style = models.Style(style)
			prepared, err := resolver.Prepare(req)
			if err != nil {
				return err
			}
			keys := cache.NewKeyBuilder()
			in := resolver.KeyInputFor(prepared, config.LoadRuntime())
			key := keys.Build(in)
			fmt.Fprintf(cmd.OutOrStdout(), "key:     %s\nversion: %s\npath:    %s\n",
				key, in.Version, keys.StoragePath(key, "png"))
			return nil
		},
	}
	bindRequestFlags(cmd, &req, &style)
	return cmd
}

func newPromptCmd() *cobra.Command {
	var (
		req   models.ImageRequest
		style string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the generation prompt for a request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Style = models.Style(style)
			prepared, err := resolver.Prepare(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt.NewBuilder().Build(prepared))
			return nil
		},
	}
	bindRequestFlags(cmd, &req, &style)
	return cmd
}
