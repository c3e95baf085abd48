package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/credvault/internal/client/client"
	"github.com/dmitrijs2005/credvault/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Welcome to credvault CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// withTimeout bounds a single server call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail reports err to the user and returns it unchanged.
func (a *App) fail(err error) error {
	a.printf("error: %v\n", err)
	return err
}
