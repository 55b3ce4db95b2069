package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/internal/server"
	"github.com/Palash-creator/gem-extract/pkg/annotate"
	"github.com/Palash-creator/gem-extract/pkg/extract"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP service",
	Long: `Start the HTTP API for document extraction.

Endpoints:
  POST /api/extract      multipart upload (fields + documents)
  POST /api/export/csv   records -> CSV download
  POST /api/export/xlsx  records -> spreadsheet download
  GET  /api/presets      named field presets
  GET  /healthz          liveness check`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.StringP("listen", "l", ":5000", "listen address")
	flags.StringP("model", "m", extract.DefaultModel, "model identifier")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("presets", "", "path to YAML field presets file")
	flags.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	_ = viper.BindPFlag("listen", flags.Lookup("listen"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("presets", flags.Lookup("presets"))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	adapter := newAdapter(viper.GetString("model"), viper.GetString("api_key"))

	var presets []server.Preset
	if path := viper.GetString("presets"); path != "" {
		var err error
		presets, err = server.LoadPresets(path)
		if err != nil {
			logError("%v", err)
			return err
		}
		logInfo("Loaded %d field preset(s) from %s", len(presets), path)
	}

	srv := &http.Server{
		Addr: viper.GetString("listen"),
		Handler: server.New(server.Config{
			Adapter: adapter,
			Presets: presets,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "model", viper.GetString("model"))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logError("server failed: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	timeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newAdapter builds the extraction adapter from resolved configuration.
// The environment credential is resolved here, in the composition root, and
// threaded into the engine config.
func newAdapter(model, credential string) *extract.Adapter {
	if credential == "" {
		credential = extract.CredentialFromEnv()
	}

	return extract.NewAdapter(extract.Config{
		Model:      model,
		Credential: credential,
		Client:     annotate.NewLLMClient(),
	})
}
