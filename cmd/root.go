// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	masker "github.com/ggwhite/go-masker/v2"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/crossfi-tickets/ticketgate/internal/cli"
	"github.com/crossfi-tickets/ticketgate/internal/config"
	"github.com/crossfi-tickets/ticketgate/internal/telemetry"
)

var (
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ticketgate",
	Short: "Signed ticket access for CrossFi events.",
	Long: `Ticket access authorization for CrossFi event ticketing.

Wallet holders prove ownership of a ticket by signing a short-lived
challenge. ticketgate checks the signature, the challenge age and the
ticket's purchaser on the EventManager contract before returning the
ticket, and gives door staff and organizers a way to verify QR codes.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("config", "f", "/etc/ticketgate/ticketgate.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("configFile", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	for key, value := range config.Defaults {
		viper.SetDefault(key, value)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("ticketgate")
	viper.SetConfigFile(viper.GetString("configFile"))

	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			cli.LogFatal(logger, "failed to read config", err, "configFile", viper.ConfigFileUsed())
		}
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		cli.LogFatal(logger, "failed to unmarshal config", err, "configFile", viper.ConfigFileUsed())
	}

	// Auto-enable tracing in debug mode so trace_id appears in log lines.
	// No exporter is set, just log correlation.
	if appConfig.Debug && !appConfig.Telemetry.Tracing.Enabled {
		appConfig.Telemetry.Tracing.Enabled = true
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	handler = telemetry.NewTraceHandler(handler)
	logger = slog.New(handler)
}

// validateConfig fails the command when the loaded config is invalid. It
// is called by commands that depend on the config file.
func validateConfig() {
	if err := config.Validate(&appConfig); err != nil {
		cli.LogFatal(logger, "validation failed", err, "configFile", viper.ConfigFileUsed())
	}

	if !appConfig.Debug {
		return
	}

	masked, err := masker.NewMaskerMarshaler().Struct(&appConfig)
	if err != nil {
		logger.Warn(
			"failed to mask config",
			slog.String("error", err.Error()),
		)
		return
	}

	logger.Debug(
		"loaded config",
		slog.String("configFile", viper.ConfigFileUsed()),
		slog.Any("config", masked),
	)
}

// logFatal logs msg with err and exits.
func logFatal(
	msg string,
	err error,
	kvPairs ...any,
) {
	cli.LogFatal(logger, msg, err, kvPairs...)
}
