package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/weathernow/weathernow/internal/config"
	"github.com/weathernow/weathernow/internal/dashboard"
	"github.com/weathernow/weathernow/internal/dashboard/view"
)

// errLookupFailed is returned by get after the failure message is printed.
var errLookupFailed = errors.New("weather lookup failed")

type options struct {
	apiURL   string
	timeout  time.Duration
	timezone string
}

type app struct {
	opts   options
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "weathernow",
		Short:         "Current weather, air quality and forecast from the WeatherNow API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.opts.apiURL, "api-url", "", "WeatherNow API base URL (default DASHBOARD_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&a.opts.timeout, "timeout", 0, "per-request timeout (default DASHBOARD_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&a.opts.timezone, "timezone", "", "IANA zone for dates (default DASHBOARD_TIMEZONE)")

	getCmd := &cobra.Command{
		Use:   "get [city]",
		Short: "Show current weather and forecast for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return a.get(cmd, strings.Join(args, " "), output)
		},
	}
	getCmd.Flags().StringP("output", "o", "text", "output format (text, json); json uses the API field names with RFC 3339 timestamps")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard: type a city per line, quit to exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.dashboard(cmd)
		},
	}

	rootCmd.AddCommand(getCmd, dashboardCmd)
	return rootCmd
}

// setup resolves configuration with flags taking precedence over the
// environment and .env.
func (a *app) setup() (*dashboard.Orchestrator, *dashboard.Mapper, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, TimeFormat: time.Kitchen}).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Logger()

	if a.opts.apiURL != "" {
		cfg.DashboardAPIURL = a.opts.apiURL
	}
	if a.opts.timeout > 0 {
		cfg.DashboardTimeout = a.opts.timeout
	}
	if a.opts.timezone != "" {
		loc, err := time.LoadLocation(a.opts.timezone)
		if err != nil {
			return nil, nil, log, fmt.Errorf("--timezone: %w", err)
		}
		cfg.DashboardZone = loc
	}

	client := dashboard.NewClient(dashboard.ClientConfig{
		BaseURL:  cfg.DashboardAPIURL,
		Timeout:  cfg.DashboardTimeout,
		Location: cfg.DashboardZone,
	})
	orchestrator := dashboard.NewOrchestrator(dashboard.OrchestratorConfig{
		Fetcher: client,
		Logger:  log,
	})

	log.Debug().
		Str("api_url", cfg.DashboardAPIURL).
		Dur("timeout", cfg.DashboardTimeout).
		Msg("dashboard client ready")

	return orchestrator, dashboard.NewMapper(cfg.DashboardZone), log, nil
}

func (a *app) get(cmd *cobra.Command, city, output string) error {
	if output != "text" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	orchestrator, mapper, _, err := a.setup()
	if err != nil {
		return err
	}

	if !orchestrator.Submit(cmd.Context(), city) {
		return errors.New("city name is required")
	}
	state := orchestrator.State()

	if state.Phase() == dashboard.PhaseFailure {
		fmt.Fprintf(a.stderr, "❌ %s\n", state.Error)
		return errLookupFailed
	}

	if output == "json" {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Weather  *dashboard.CurrentWeather `json:"weather"`
			Forecast *dashboard.Forecast       `json:"forecast"`
		}{state.Weather, state.Forecast})
	}

	return view.RenderText(a.stdout, state, mapper)
}

func (a *app) dashboard(cmd *cobra.Command) error {
	orchestrator, mapper, log, err := a.setup()
	if err != nil {
		return err
	}

	renderer := view.NewTextRenderer(mapper)
	unsubscribe := orchestrator.Subscribe(func(s dashboard.State) {
		if err := renderer.Render(a.stdout, s); err != nil {
			log.Error().Err(err).Msg("failed to render dashboard")
		}
	})
	defer unsubscribe()

	if err := renderer.Render(a.stdout, orchestrator.State()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(a.stdin)
	for {
		fmt.Fprint(a.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		orchestrator.Submit(cmd.Context(), line)
	}
	fmt.Fprintln(a.stdout)

	return scanner.Err()
}
