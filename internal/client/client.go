// Package client wraps invocations of the blockchain participation client
// binary. The binary is treated as a black box: nodectl only queries its
// version, registers wallets, and assembles its headless start command.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/trellisnet/nodectl/internal/execx"
	"github.com/trellisnet/nodectl/internal/log"
)

// Client runs read-only and one-shot commands against the participation
// client binary.
type Client struct {
	binaryPath string
	runner     execx.Runner
	logger     log.Logger
}

// New creates a client for the binary at binaryPath.
func New(binaryPath string, runner execx.Runner, logger log.Logger) *Client {
	return &Client{
		binaryPath: binaryPath,
		runner:     runner,
		logger:     logger,
	}
}

// BinaryPath returns the configured path of the participation client binary.
func (c *Client) BinaryPath() string {
	return c.binaryPath
}

// Version returns the client's version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	output, err := c.runner.CombinedOutput(ctx, c.binaryPath, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to query client version: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RegisterWallet performs the one-time wallet registration call made during
// wallet-mode installs. The address is validated by the caller.
func (c *Client) RegisterWallet(ctx context.Context, address string) error {
	c.logger.Info("Registering wallet with participation client", "address", address)

	output, err := c.runner.CombinedOutput(ctx, c.binaryPath, "register", "--wallet", address)
	if err != nil {
		return fmt.Errorf("wallet registration failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// StartCommand assembles the headless ExecStart command line for the
// service unit. nodeID is appended only when non-empty.
func (c *Client) StartCommand(nodeID string) string {
	cmd := c.binaryPath + " start --headless"
	if nodeID != "" {
		cmd += " --node-id " + nodeID
	}
	return cmd
}
