package cli

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/cache"
	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/observability"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
	"github.com/matzehuels/eventlayout/pkg/server"
	"github.com/matzehuels/eventlayout/pkg/session"
)

// Session store backends for serve.
const (
	storeMemory = "memory"
	storeFile   = "file"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		redisAddr   string
		store       string
		sessionsDir string
		sessionTTL  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout editing HTTP API",
		Long: `Serve runs the HTTP API. Uploaded layouts become sessions that are edited,
validated and exported through /api/v1/sessions.

With --redis both sessions and rendered exports live in Redis, so several
instances can serve the same sessions. Otherwise sessions are kept in memory
(or in --sessions-dir with --store file) and exports use the local cache.`,
		Example: `  eventlayout serve
  eventlayout serve --addr :9000 --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("redis") {
				redisAddr = c.Config.Cache.RedisAddr
			}

			runner, sessions, err := c.serveBackends(ctx, redisAddr, store, sessionsDir)
			if err != nil {
				return err
			}
			defer runner.Close()

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetServerHooks(hooks)
			defer observability.Reset()

			srv := server.New(sessions, runner, c.Logger, server.Options{
				Sheet:        c.Config.Sheet,
				DataStartRow: c.Config.DataStartRow,
				Indent:       c.Config.Export.Indent,
				SessionTTL:   sessionTTL,
			})
			printSuccess("Serving on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8080", "listen address")
	flags.StringVar(&redisAddr, "redis", "", "Redis address for sessions and the export cache")
	flags.StringVar(&store, "store", storeMemory, "session store without Redis: memory or file")
	flags.StringVar(&sessionsDir, "sessions-dir", "", "directory of the file session store (default ~/.config/eventlayout/sessions)")
	flags.DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "lifetime of uploaded sessions")

	return cmd
}

// serveBackends builds the runner and session store. A Redis address selects
// Redis for both, sharing one client; keys of the API are scoped apart from
// CLI keys.
func (c *CLI) serveBackends(ctx context.Context, redisAddr, store, sessionsDir string) (*pipeline.Runner, session.Store, error) {
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr, DialTimeout: 2 * time.Second})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "connect redis %s", redisAddr)
		}
		runner := pipeline.NewRunner(cache.NewRedisCacheFromClient(client),
			cache.NewScopedKeyer(nil, "api:"), c.Logger)
		runner.ArtifactTTL = c.Config.Cache.TTL.Duration
		c.Logger.Debug("using redis", "addr", redisAddr)
		return runner, session.NewRedisStore(client, ""), nil
	}

	var sessions session.Store
	switch store {
	case storeMemory:
		sessions = session.NewMemoryStore()
	case storeFile:
		fs, err := session.NewFileStore(sessionsDir)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeIO, err, "open session store")
		}
		c.Logger.Debug("using file sessions", "dir", fs.Path())
		sessions = fs
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "unknown session store %q (want memory or file)", store)
	}

	ch, err := c.newCache(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, "api:"), c.Logger)
	runner.ArtifactTTL = c.Config.Cache.TTL.Duration
	return runner, sessions, nil
}
