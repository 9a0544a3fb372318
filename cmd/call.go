package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var callArguments string

//nolint:gochecknoglobals // required by cobra CLI pattern
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one tool and print its result as JSON",
	Long: `Invoke a registered tool with JSON arguments and print the terminal
result to stdout.

Examples:
  bbtools call list_projects --args '{"limit": 10}'
  bbtools call code_search --args '{"query": "TODO", "fileGlob": "**/*.go"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	callCmd.Flags().StringVar(&callArguments, "args", "{}", "Tool arguments as a JSON object")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service := injectToolService(cfg)

	result, err := service.Invoke(cmd.Context(), args[0], []byte(callArguments))
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	fmt.Println(string(output))
	return nil
}
