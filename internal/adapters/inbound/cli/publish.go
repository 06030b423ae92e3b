package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/publisher"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// envPrefix names the environment variables publish falls back to, e.g.
// A11YAUDIT_S3_ENDPOINT.
const envPrefix = "A11YAUDIT_S3_"

func newPublishCmd(g *globalOptions) *cobra.Command {
	var (
		outDir   string
		cfg      publisher.Config
		insecure bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the report directory to S3-compatible storage",
		Long: "Upload every generated report file to a bucket. Unset flags fall back to " +
			envPrefix + "ENDPOINT, " + envPrefix + "BUCKET, " + envPrefix + "REGION, " +
			envPrefix + "ACCESS_KEY and " + envPrefix + "SECRET_KEY.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _, err := g.load()
			if err != nil {
				return err
			}

			fromEnv(&cfg.Endpoint, "ENDPOINT")
			fromEnv(&cfg.Bucket, "BUCKET")
			fromEnv(&cfg.Region, "REGION")
			fromEnv(&cfg.AccessKey, "ACCESS_KEY")
			fromEnv(&cfg.SecretKey, "SECRET_KEY")
			cfg.UseSSL = !insecure
			if cfg.Endpoint == "" || cfg.Bucket == "" {
				return fmt.Errorf("%w: publish needs an endpoint and a bucket", domain.ErrConfig)
			}

			p, err := publisher.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			n, err := publish(cmd.Context(), cmd.OutOrStdout(), p, outputDir(project, outDir))
			if err != nil {
				return err
			}
			g.logger.Info("report published", "bucket", cfg.Bucket, "objects", n)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&outDir, "out", "", "Report directory (default from project config)")
	f.StringVar(&cfg.Endpoint, "endpoint", "", "S3 endpoint host[:port]")
	f.StringVar(&cfg.Bucket, "bucket", "", "Destination bucket")
	f.StringVar(&cfg.Region, "region", "", "Bucket region")
	f.StringVar(&cfg.Prefix, "prefix", "", "Object key prefix, e.g. a11y/qa")
	f.StringVar(&cfg.AccessKey, "access-key", "", "Access key")
	f.StringVar(&cfg.SecretKey, "secret-key", "", "Secret key")
	f.BoolVar(&insecure, "insecure", false, "Use plain HTTP")
	return cmd
}

func fromEnv(dst *string, name string) {
	if *dst == "" {
		*dst = os.Getenv(envPrefix + name)
	}
}

// publish uploads dir and prints one URL per uploaded object.
func publish(ctx context.Context, w io.Writer, p domain.Publisher, dir string) (int, error) {
	urls, err := p.Publish(ctx, dir)
	for _, u := range urls {
		fmt.Fprintln(w, u)
	}
	return len(urls), err
}
