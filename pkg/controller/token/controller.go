// Package token stores the GitHub access token in the OS keyring.
package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Controller struct {
	stdin        io.Reader
	tokenManager TokenManager
}

func New(stdin io.Reader, tokenManager TokenManager) *Controller {
	return &Controller{
		stdin:        stdin,
		tokenManager: tokenManager,
	}
}

type TokenManager interface {
	SetToken(token string) error
	RemoveToken() error
}

// Set reads a token from the first line of stdin and stores it.
func (c *Controller) Set() error {
	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read a GitHub access token from stdin: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return errors.New("a GitHub access token is empty")
	}
	if err := c.tokenManager.SetToken(token); err != nil {
		return fmt.Errorf("store a GitHub access token in the secret store: %w", err)
	}
	return nil
}

func (c *Controller) Remove() error {
	if err := c.tokenManager.RemoveToken(); err != nil {
		return fmt.Errorf("remove a GitHub access token from the secret store: %w", err)
	}
	return nil
}
