package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuchingh/daybook/internal/auth"
	"golang.org/x/term"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the backend access token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store the backend token in the system credential store",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			fmt.Print("Enter backend token: ")
			token, err := readSecret()
			if err != nil {
				return err
			}
			fmt.Println()

			if strings.TrimSpace(token) == "" {
				return errors.New("empty token")
			}
			if err := auth.SaveToken(token); err != nil {
				return err
			}
			fmt.Println("Token saved to your system credential store.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored backend token",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := auth.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Token removed from your system credential store.")
			return nil
		},
	})

	return cmd
}

func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		value, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		if len(line) == 0 {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
