// Package pronounce fetches and plays word pronunciations.
package pronounce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"
)

const voiceEndpoint = "https://dict.youdao.com/dictvoice"

// Variant selects the accent used for playback.
type Variant string

const (
	US Variant = "us"
	UK Variant = "uk"
)

// ParseVariant validates a variant name. Empty means US.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(s) {
	case "", "us":
		return US, true
	case "uk":
		return UK, true
	default:
		return US, false
	}
}

// FallbackCodes returns the provider voice-type codes to try, in
// order: the requested accent first, then the other one.
func FallbackCodes(variant Variant) []string {
	if variant == UK {
		return []string{"1", "2"}
	}
	return []string{"2", "1"}
}

// AudioURL builds the provider URL for a word and voice-type code.
func AudioURL(word, code string) string {
	return voiceEndpoint + "?audio=" + url.QueryEscape(word) + "&type=" + code
}

// Speaker downloads pronunciations and hands them to a system audio
// player. Player may name a specific command; when empty the first
// available known player is used.
type Speaker struct {
	Player string
}

// Known players in preference order. Each is tried with LookPath.
var playerCandidates = [][]string{
	{"mpv", "--really-quiet", "--no-video"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
}

// Speak fetches the word's audio, trying each fallback voice code in
// order, and plays the first one that downloads. The returned error is
// informational only; pronunciation failures never interrupt study.
func (s *Speaker) Speak(ctx context.Context, word string, variant Variant) error {
	player, args, err := s.resolvePlayer()
	if err != nil {
		return err
	}
	var lastErr error
	for _, code := range FallbackCodes(variant) {
		path, err := fetchAudio(ctx, word, code)
		if err != nil {
			lastErr = err
			continue
		}
		err = playFile(ctx, player, args, path)
		if rerr := os.Remove(path); rerr != nil {
			// Best-effort temp file cleanup.
			_ = rerr
		}
		if err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no voice variants available")
	}
	return fmt.Errorf("failed to pronounce %q: %w", word, lastErr)
}

func (s *Speaker) resolvePlayer() (string, []string, error) {
	if s.Player != "" {
		parts := strings.Fields(s.Player)
		path, err := exec.LookPath(parts[0])
		if err != nil {
			return "", nil, fmt.Errorf("configured player not found: %w", err)
		}
		return path, parts[1:], nil
	}
	for _, candidate := range playerCandidates {
		if path, err := exec.LookPath(candidate[0]); err == nil {
			return path, candidate[1:], nil
		}
	}
	return "", nil, fmt.Errorf("no audio player found")
}

func fetchAudio(ctx context.Context, word, code string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, AudioURL(word, code), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected voice status: %s", resp.Status)
	}
	tmpFile, err := os.CreateTemp("", "vocabtui-voice-*.mp3")
	if err != nil {
		return "", fmt.Errorf("failed to create temp audio file: %w", err)
	}
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to download audio: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to close audio file: %w", err)
	}
	return tmpFile.Name(), nil
}

func playFile(ctx context.Context, player string, args []string, path string) error {
	cmd := exec.CommandContext(ctx, player, append(append([]string{}, args...), path)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to play audio: %w", err)
	}
	return nil
}
