package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/beacon"
	"github.com/bft-labs/beacon/internal/adapters/fs"
	"github.com/bft-labs/beacon/internal/assets"
	"github.com/bft-labs/beacon/internal/cliconfig"
	"github.com/bft-labs/beacon/internal/domain"
	"github.com/bft-labs/beacon/internal/ports"
	plog "github.com/bft-labs/beacon/pkg/log"
	"github.com/bft-labs/beacon/plugins/bundlewatcher"
)

const longHelp = `Send a JSON beacon to an HTTP endpoint and print the response status.

Beacons are either one of the built-in payloads (a, b) or a .json file
from the resource bundle. The bundle defaults to the one compiled into
the binary; point --bundle-dir at a directory to use your own files.

Configuration is read from $HOME/.beacon/config.toml, then .env,
then BEACON_* environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  beacon send a --destination http://192.168.86.62:2000
  beacon send-resource login --preview
  beacon watch login --bundle-dir ./fixtures
`)

// errSendFailed marks a send that completed without an HTTP status.
// The result text has already been printed.
var errSendFailed = errors.New("send failed")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries state shared by the subcommands once the root has loaded config.
type cli struct {
	cfg        cliconfig.Config
	cfgPath    string
	envPath    string
	logger     *plog.ZerologAdapter
	bundle     ports.ResourceLoader
	controller *beacon.Controller
	out        io.Writer
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig(), out: os.Stdout}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := c.rootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errSendFailed) {
		if c.logger != nil {
			c.logger.Error("beacon", plog.Err(err))
		} else {
			fmt.Fprintln(os.Stderr, "beacon:", err)
		}
	}
	stop()
	os.Exit(1)
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "beacon",
		Short:             "Send a JSON beacon to an HTTP endpoint",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.beacon/config.toml)")
	flags.StringVar(&c.envPath, "env-file", ".env", "path to a .env file")
	flags.StringVar(&c.cfg.Destination, "destination", c.cfg.Destination, "destination URL (http/https)")
	flags.StringVar(&c.cfg.BundleDir, "bundle-dir", c.cfg.BundleDir, "directory of .json resources (default: embedded bundle)")
	flags.DurationVar(&c.cfg.HTTPTimeout, "timeout", c.cfg.HTTPTimeout, "HTTP timeout (0 keeps the client default)")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&c.cfg.LogFormat, "log-format", c.cfg.LogFormat, "log format: console, json")
	flags.BoolVar(&c.cfg.Preview, "preview", c.cfg.Preview, "print the payload and destination before sending")
	flags.DurationVar(&c.cfg.DebounceDelay, "debounce", c.cfg.DebounceDelay, "delay after a file change before resending (watch)")

	root.AddCommand(c.sendCommand(), c.sendResourceCommand(), c.watchCommand())
	return root
}

// setup loads configuration (file, .env, env, flags) and builds the controller.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	} else if !cliconfig.FileExists(cfgFile) {
		return fmt.Errorf("config file %s not found", cfgFile)
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed, filepath.Dir(cfgFile)); err != nil {
			return err
		}
	}

	if err := cliconfig.LoadDotEnv(c.envPath); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	logger, err := plog.NewZerologAdapter(plog.Options{Level: c.cfg.LogLevel, Format: c.cfg.LogFormat})
	if err != nil {
		return err
	}
	c.logger = logger
	logger.Debug("configuration",
		plog.String("destination", c.cfg.Destination),
		plog.String("bundle_dir", c.cfg.BundleDir),
		plog.Duration("http_timeout", c.cfg.HTTPTimeout),
		plog.Bool("preview", c.cfg.Preview),
	)

	if c.cfg.BundleDir != "" {
		c.bundle = fs.NewDirBundle(c.cfg.BundleDir)
	} else {
		c.bundle = fs.NewBundle(assets.Bundle)
	}

	c.controller = beacon.New(c.cfg.Destination,
		beacon.WithTimeout(c.cfg.HTTPTimeout),
		beacon.WithLogger(logger),
		beacon.WithResourceLoader(c.bundle),
		beacon.WithUserAgent("beacon/"+getVersion()),
	)
	return nil
}

func (c *cli) sendCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "send <a|b>",
		Short:     "Send a built-in beacon",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"a", "b"},
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, ok := beacon.BuiltinPayload(args[0])
			if !ok {
				return fmt.Errorf("unknown beacon %q (want a or b)", args[0])
			}
			c.preview(payload)
			return c.report(<-c.controller.SendLiteral(cmd.Context(), payload))
		},
	}
}

func (c *cli) sendResourceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send-resource [name]",
		Short: "Send <name>.json from the resource bundle",
		Long:  "Send <name>.json from the resource bundle as-is. The name defaults to " + cliconfig.DefaultResource + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cliconfig.DefaultResource
			if len(args) == 1 {
				name = args[0]
			}
			if c.cfg.Preview {
				if data, err := c.bundle.Load(name); err == nil {
					c.preview(data)
				}
			}
			return c.report(<-c.controller.SendResource(cmd.Context(), name))
		},
	}
}

func (c *cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [name]",
		Short: "Resend <name>.json every time it changes in --bundle-dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.BundleDir == "" {
				return errors.New("watch requires --bundle-dir")
			}
			name := cliconfig.DefaultResource
			if len(args) == 1 {
				name = args[0]
			}

			w, err := bundlewatcher.New(bundlewatcher.Config{
				Dir:           c.cfg.BundleDir,
				Resource:      name,
				DebounceDelay: c.cfg.DebounceDelay,
				SendOnStart:   true,
			}, c.controller, c.logger)
			if err != nil {
				return err
			}

			updates, cancel := c.controller.Subscribe()
			printed := make(chan struct{})
			go func() {
				defer close(printed)
				for res := range updates {
					fmt.Fprintln(c.out, res)
				}
			}()
			defer func() {
				cancel()
				<-printed
			}()

			if err := w.Run(cmd.Context()); err != nil {
				return err
			}
			c.logger.Info("received signal, stopping...")
			c.controller.Wait()
			return nil
		},
	}
}

// preview prints the payload and destination the way the result pane did
// before a send. Nothing is printed when the send would fail validation.
func (c *cli) preview(payload any) {
	if !c.cfg.Preview {
		return
	}
	if _, err := domain.ParseDestination(c.controller.Destination()); err != nil {
		return
	}
	if _, raw := payload.([]byte); !raw {
		if _, err := domain.EncodePayload(payload); err != nil {
			return
		}
	}
	fmt.Fprintf(c.out, "Sending…\n%s\n→ %s\n", beacon.PrettyPrint(payload), strings.TrimSpace(c.controller.Destination()))
}

func (c *cli) report(res beacon.Result) error {
	fmt.Fprintln(c.out, res)
	if res.Failed() {
		return errSendFailed
	}
	return nil
}
