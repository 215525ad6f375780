/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/impostor/game"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	maxPlayers     int
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	turnTimeout    time.Duration
	verbose        bool
	version        bool
	words          string

	// local
	rounds int
	voting string

	// watch
	pollInterval time.Duration
	maxPolls     int
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.maxPlayers < game.MinPlayers {
		return fmt.Errorf("invalid max players (must be at least %d): %d", game.MinPlayers, c.maxPlayers)
	}
	if c.turnTimeout < 0 {
		return fmt.Errorf("invalid turn timeout (must not be negative): %s", c.turnTimeout)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// bindFlags seeds every flag in fs from IMPOSTOR_<FLAG>. Values given on
// the command line are parsed later and still win.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("IMPOSTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "impostor",
		Short:         "Serves the impostor word game to phones on the same network.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	pfs := cmd.PersistentFlags()
	pfs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: IMPOSTOR_VERBOSE)")
	pfs.StringVar(&cfg.words, "words", "", "path to a JSON list of secret words, instead of the built-in football deck (env: IMPOSTOR_WORDS)")

	fs := cmd.Flags()
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: IMPOSTOR_BIND)")
	fs.IntVar(&cfg.maxPlayers, "max-players", game.DefaultMaxPlayers, "maximum players per room (env: IMPOSTOR_MAX_PLAYERS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: IMPOSTOR_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: IMPOSTOR_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: IMPOSTOR_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle rooms are discarded (env: IMPOSTOR_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: IMPOSTOR_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: IMPOSTOR_TLS_KEY)")
	fs.DurationVar(&cfg.turnTimeout, "turn-timeout", 0, "skip a player who takes longer than this to give a clue, 0 to wait forever (env: IMPOSTOR_TURN_TIMEOUT)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: IMPOSTOR_VERSION)")

	bindFlags(v, pfs)
	bindFlags(v, fs)

	cmd.AddCommand(newLocalCmd(cfg, v), newWatchCmd(cfg, v))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("impostor v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func newLocalCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local NAME NAME NAME...",
		Short: "Play on a single device, passing it around the table.",
		Args:  cobra.MinimumNArgs(game.MinPlayers),
		RunE: func(cmd *cobra.Command, args []string) error {
			return playLocal(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), args)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&cfg.rounds, "rounds", 3, "rounds of clues before voting, 0 to vote whenever you like (env: IMPOSTOR_ROUNDS)")
	fs.StringVar(&cfg.voting, "voting", string(game.VotingTurnOrdered), "voting mode, turn_ordered or free (env: IMPOSTOR_VOTING)")

	bindFlags(v, fs)

	return cmd
}

func newWatchCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch URL ROOM PLAYER",
		Short: "Follow a room from the terminal as one of its players.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(cmd.Context(), cfg, cmd.OutOrStdout(), args[0], args[1], args[2])
		},
	}

	fs := cmd.Flags()
	fs.DurationVar(&cfg.pollInterval, "poll-interval", 3*time.Second, "time between reconciliation polls (env: IMPOSTOR_POLL_INTERVAL)")
	fs.IntVar(&cfg.maxPolls, "max-polls", 20, "polls made after a missed update before giving up (env: IMPOSTOR_MAX_POLLS)")

	bindFlags(v, fs)

	return cmd
}
