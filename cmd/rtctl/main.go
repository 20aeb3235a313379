package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/samandr77/microservices/advances/pkg/logger"
)

const (
	defaultURL     = "http://localhost:8080/api"
	defaultTimeout = 30 * time.Second
)

type options struct {
	url      string
	user     string
	password string
	timeout  time.Duration
	logLevel string
	now      func() time.Time
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(os.Stdout, os.Stderr, time.Now).ExecuteContext(ctx)
	if err != nil {
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}

func newRootCmd(stdout, stderr io.Writer, now func() time.Time) *cobra.Command {
	o := &options{now: now}

	root := &cobra.Command{
		Use:          "rtctl",
		Short:        "Radiotherapy advance payments tracker",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			_, err := logger.NewWithWriter(stderr, o.logLevel)
			return err
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.PersistentFlags()
	f.StringVar(&o.url, "url", envOr("RTCTL_URL", defaultURL), "gateway API base URL")
	f.StringVarP(&o.user, "user", "u", os.Getenv("RTCTL_USER"), "username")
	f.StringVarP(&o.password, "password", "p", os.Getenv("RTCTL_PASSWORD"), "password")
	f.DurationVar(&o.timeout, "timeout", defaultTimeout, "request timeout")
	f.StringVar(&o.logLevel, "log-level", "error", "log level of request logging")

	root.AddCommand(
		newLoginCmd(o),
		newListCmd(o),
		newStatsCmd(o),
		newAddCmd(o),
		newEditCmd(o),
		newCloseCmd(o),
		newDeleteCmd(o),
		newExportCmd(o),
		newReceiptCmd(o),
	)

	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
