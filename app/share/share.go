// Package share delivers generated text to a native share target, falling
// back to the clipboard with an attribution line.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("share target unavailable")

type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
	MethodNone      Method = "none"
)

// Attribution appends the "Generated at" line used for clipboard copies.
func Attribution(text, url string) string {
	if url == "" {
		return text
	}
	return text + "\n\nGenerated at: " + url
}

type Sink interface {
	Share(ctx context.Context, text string) error
}

// Clipboard copies text to the system clipboard. The zero value is
// unavailable, use NewClipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard returns the system clipboard sink. It is unavailable when no
// clipboard utility is installed.
func NewClipboard() *Clipboard {
	if clipboard.Unsupported {
		return &Clipboard{}
	}
	return &Clipboard{write: clipboard.WriteAll}
}

func (c *Clipboard) Share(_ context.Context, text string) error {
	if c.write == nil {
		return fmt.Errorf("clipboard: %w", ErrUnavailable)
	}
	if err := c.write(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Writer prints text to w, one share per line block.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Share(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, text)
	return err
}

// Poster is the part of the Slack client the Slack sink needs.
type Poster interface {
	Post(ctx context.Context, text string) (string, error)
}

// Slack posts text to a channel through a started Slack client.
type Slack struct {
	poster Poster
}

func NewSlack(poster Poster) *Slack {
	return &Slack{poster: poster}
}

func (s *Slack) Share(ctx context.Context, text string) error {
	if s.poster == nil {
		return fmt.Errorf("slack: %w", ErrUnavailable)
	}
	_, err := s.poster.Post(ctx, text)
	return err
}

// Sharer tries the primary sink with the raw text and falls back to the
// clipboard copy with attribution. Neither failure is returned to the caller.
type Sharer struct {
	log      *zap.Logger
	primary  Sink
	fallback Sink
	url      string
}

// NewSharer builds a sharer. primary and fallback may each be nil.
func NewSharer(log *zap.Logger, primary, fallback Sink, url string) *Sharer {
	return &Sharer{
		log:      log,
		primary:  primary,
		fallback: fallback,
		url:      url,
	}
}

func (s *Sharer) Share(ctx context.Context, text string) Method {
	if s.primary != nil {
		err := s.primary.Share(ctx, text)
		if err == nil {
			return MethodNative
		}
		s.log.Warn("Native share failed, falling back to clipboard", zap.Error(err))
	}

	if s.fallback == nil {
		return MethodNone
	}

	if err := s.fallback.Share(ctx, Attribution(text, s.url)); err != nil {
		s.log.Warn("Clipboard copy failed", zap.Error(err))
		return MethodNone
	}
	return MethodClipboard
}
