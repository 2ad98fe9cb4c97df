// Package slack holds the Slack client used to post shared prompts to a
// channel.
package slack

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

var ErrNotStarted = errors.New("slack client not started")

type Config struct {
	Token   string
	Channel string
	// APIURL overrides the Slack Web API endpoint. Must end in a slash.
	APIURL string
	Debug  bool
}

// Enabled reports whether enough is configured to post messages.
func (c Config) Enabled() bool {
	return c.Token != "" && c.Channel != ""
}

type Slack struct {
	log    *zap.Logger
	config Config
	client *slack.Client
}

func NewSlack(log *zap.Logger, config Config) *Slack {
	return &Slack{
		log:    log,
		config: config,
	}
}

func (s *Slack) Start(ctx context.Context) error {
	if s.config.Token == "" {
		return fmt.Errorf("no Slack authentication credentials provided")
	}

	clientOpts := []slack.Option{
		slack.OptionDebug(s.config.Debug),
	}
	if s.config.APIURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(s.config.APIURL))
	}

	client := slack.New(s.config.Token, clientOpts...)

	resp, err := client.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("authenticate with Slack: %w", err)
	}

	s.log.Info("Connected to Slack",
		zap.String("team", resp.Team),
		zap.String("user", resp.User))
	s.client = client
	return nil
}

// Post sends text to the configured channel and returns the message timestamp.
func (s *Slack) Post(ctx context.Context, text string) (string, error) {
	if s.client == nil {
		return "", ErrNotStarted
	}

	_, ts, err := s.client.PostMessageContext(ctx, s.config.Channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", fmt.Errorf("post to %s: %w", s.config.Channel, err)
	}

	s.log.Debug("Posted message", zap.String("channel", s.config.Channel), zap.String("ts", ts))
	return ts, nil
}

func (s *Slack) Client() *slack.Client {
	return s.client
}
