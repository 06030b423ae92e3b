package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/config"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

const exampleEnv = `# Sites audited in this environment.
sites:
  - name: Example
    base_url: https://qa.example.com
    paths_csv_file: example.csv
    # login_url: https://qa.example.com/login
    # Credentials fall back to EXAMPLE_USERNAME / EXAMPLE_PASSWORD.
`

const examplePages = "name,path\nHome,/\n"

func newInitCmd() *cobra.Command {
	var (
		force    bool
		title    string
		tags     []string
		scaffold bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long:  "Create a " + config.FileName + " with the default settings, optionally with an example environment and page list.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if title != "" {
				cfg.Title = title
			}
			if len(tags) > 0 {
				cfg.Tags = tags
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrConfig, err)
			}

			content, err := generateConfig(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)

			if scaffold {
				if err := writeScaffold(absPath, cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s/%s.yaml and %s/example.csv\n",
					cfg.EnvDir, domain.DefaultEnvironment, cfg.PagesDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+config.FileName)
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Default guideline tags")
	cmd.Flags().BoolVar(&scaffold, "scaffold", false, "Also create an example environment file and page list")

	return cmd
}

func generateConfig(cfg domain.ProjectConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# a11yaudit configuration\n")
	buf.WriteString("# Relative paths are resolved against this file's directory.\n\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	buf.WriteString("\n# html_template: templates/report.html.tmpl\n")
	return buf.Bytes(), nil
}

func writeScaffold(root string, cfg domain.ProjectConfig) error {
	files := map[string]string{
		filepath.Join(root, cfg.EnvDir, domain.DefaultEnvironment+".yaml"): exampleEnv,
		filepath.Join(root, cfg.PagesDir, "example.csv"):                   examplePages,
	}
	for path, content := range files {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
