package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/awantoch/kwanixflow/constants"
	flowhttp "github.com/awantoch/kwanixflow/http"
)

// newServeCmd creates the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{
		Use:   constants.CmdServe,
		Short: constants.DescServe,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig()
			if err != nil {
				exit(1)
				return
			}
			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := flowhttp.StartServer(ctx, cfg); err != nil {
				fail("Server failed: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&host, "host", constants.DefaultHTTPHost, "host to listen on")
	cmd.Flags().IntVarP(&port, "port", "p", constants.DefaultHTTPPort, "port to listen on")
	return cmd
}
