package main

import (
	"context"

	"github.com/aretw0/clui/internal/cli"
	"github.com/aretw0/clui/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Expose a session over HTTP",
	Long: `Compiles the script and serves its root session as a JSON API
(GET /session, POST /next, /reset, /insert, GET /events) with Prometheus metrics on /metrics.
Transitions are published to Redis when --redis-addr is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		redisChannel, _ := cmd.Flags().GetString("redis-channel")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Path:          scriptPath(cmd, args),
			Addr:          addr,
			Debug:         debug,
			RedisAddr:     redisAddr,
			RedisPassword: redisPassword,
			RedisDB:       redisDB,
			RedisChannel:  redisChannel,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis-addr", "", "Redis address for event publishing (disabled when empty)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().String("redis-channel", redis.DefaultChannel, "Redis channel for events")
}
