package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pitchlucy/lucy/config"
	"github.com/pitchlucy/lucy/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

const termsMarker = "terms_accepted"

const termsText = `Pitch Lucy is a game. Every pitch costs a fee paid in USDC that is not refunded,
whatever Lucy answers. Lucy's verdicts are produced by an AI and are not financial advice.
Transactions are signed with your own wallet and cannot be reverted once confirmed.`

func termsAccepted(cfg config.Configs) (bool, error) {
	path, err := cfg.StatePath(termsMarker)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// acceptTerms leaves a marker holding the time of acceptance.
func acceptTerms(cfg config.Configs, now time.Time) error {
	path, err := cfg.StatePath(termsMarker)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(now.UTC().Format(time.RFC3339)), 0o600)
}

func (s *srv) startAcceptTerms(c *cli.Context) error {
	cfg := xcontext.Configs(s.ctx)

	fmt.Fprintln(s.out, termsText)
	if !c.Bool("yes") {
		fmt.Fprint(s.out, "\nType yes to accept: ")
		answer, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && answer == "" {
			return fmt.Errorf("cannot read answer: %w", err)
		}

		if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
			fmt.Fprintln(s.out, "Terms not accepted.")
			return nil
		}
	}

	if err := acceptTerms(cfg, time.Now()); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Terms accepted, you can now pitch.")
	return nil
}
