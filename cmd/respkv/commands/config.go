package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/marmos91/respkv/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage respkv configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the respkv configuration file.

Checks for syntax errors, missing required fields, and invalid values.`,
	RunE: runConfigValidate,
}

var schemaOutput string

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for the configuration file",
	RunE:  runConfigSchema,
}

func init() {
	configSchemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "Output file (default: stdout)")
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")
	fmt.Println()
	fmt.Printf("  Listen address:  %s\n", cfg.Server.Addr())
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)
	fmt.Printf("  Metrics enabled: %t\n", cfg.Metrics.Enabled)
	fmt.Printf("  Tracing enabled: %t\n", cfg.Tracing.Enabled)

	return nil
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "respkv Configuration"
	schema.Description = "Configuration schema for the respkv server"

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if schemaOutput != "" {
		if err := os.WriteFile(schemaOutput, schemaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", schemaOutput)
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
	return nil
}
