package e2e

import (
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/infrastructure/gateway"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseGatewaySuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips when no gateway is configured.
func (s *BaseGatewaySuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.GatewayURL == "" || s.Config.GatewayAPIKey == "" {
		s.T().Skip("E2E_GATEWAY_URL and E2E_GATEWAY_API_KEY are required for the live suite")
	}
}

// loggingGateway logs every call of the wrapped gateway in the test output.
type loggingGateway struct {
	t       *testing.T
	next    contract.IGateway
	prompts bool
}

func (g loggingGateway) Send(ctx context.Context, request domain.GatewayRequest) (string, error) {
	start := time.Now()
	text, err := g.next.Send(ctx, request)

	var sb strings.Builder
	fmt.Fprintf(&sb, "GATEWAY %s in %v", request.Endpoint, time.Since(start))
	if g.prompts {
		fmt.Fprintf(&sb, "\nPROMPT:\n%s %s", request.Prompt, request.Auxiliary)
		if err != nil {
			fmt.Fprintf(&sb, "\nERROR: %v", err)
		} else {
			fmt.Fprintf(&sb, "\nRESPONSE:\n%s", text)
		}
	}
	g.t.Log(sb.String())
	return text, err
}

// Gateway returns a live gateway client that logs under a colorized header.
func (s *BaseGatewaySuite) Gateway(name string) contract.IGateway {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	client := gateway.NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)), s.Config.GatewayURL, nil)
	return loggingGateway{t: s.T(), next: client, prompts: s.Config.DebugPrompts}
}

func (s *BaseGatewaySuite) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.Config.Timeout)
}
