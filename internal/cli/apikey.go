package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apper-canvas/taskflow/server"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage record API keys",
}

var apikeyHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the bcrypt hash of an API key",
	Long: `Read an API key and print the bcrypt hash to set as API_KEY_HASH on
taskflow-server. The key is read without echo from a terminal, or as one
line from standard input.`,
	Args: cobra.NoArgs,
	RunE: runAPIKeyHash,
}

func init() {
	apikeyCmd.AddCommand(apikeyHashCmd)
}

func runAPIKeyHash(cmd *cobra.Command, args []string) error {
	key, err := readKey(cmd)
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("api key must not be empty")
	}

	hash, err := server.HashAPIKey(key)
	if err != nil {
		return fmt.Errorf("failed to hash key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func readKey(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
