package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andresmejia3/endcrypt/pkg/endcrypt"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// cipherFlags are shared by every command that runs the cipher.
type cipherFlags struct {
	Level      int
	Iterations int
	Key        float64
	Pass       string
	Salt       string
	Workers    int
}

func (f *cipherFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.Level, "level", "l", endcrypt.DefaultLevel, "Security level; permutation rounds = level*2")
	cmd.Flags().IntVar(&f.Iterations, "iterations", 0, "Permutation rounds (overrides --level)")
	cmd.Flags().Float64VarP(&f.Key, "key", "k", endcrypt.DefaultKey, "Chaotic seed, expected in (0,1)")
	cmd.Flags().StringVarP(&f.Pass, "passphrase", "p", "", "Derive the key from a passphrase instead of --key")
	cmd.Flags().StringVar(&f.Salt, "salt", endcrypt.DefaultSalt, "Salt for passphrase key derivation")
	cmd.Flags().IntVarP(&f.Workers, "workers", "w", 0, "Number of workers per permutation round (default: number of CPUs)")
}

// resolve returns the key and iteration count selected by the flags.
func (f *cipherFlags) resolve(cmd *cobra.Command) (float64, int, error) {
	if f.Workers < 0 {
		return 0, 0, errors.New("number of workers cannot be negative")
	}

	iterations := endcrypt.Iterations(f.Level)
	if cmd.Flags().Changed("iterations") {
		iterations = f.Iterations
	}
	if iterations < 0 {
		return 0, 0, fmt.Errorf("iterations must be non-negative, got %d", iterations)
	}

	key := f.Key
	if f.Pass != "" {
		if cmd.Flags().Changed("key") {
			return 0, 0, errors.New("passphrase and key cannot both be provided")
		}
		derived, err := endcrypt.KeyFromPassphrase(f.Pass, f.Salt)
		if err != nil {
			return 0, 0, err
		}
		key = derived
	}
	return key, iterations, nil
}

func (f *cipherFlags) options(bar *progressbar.ProgressBar) endcrypt.Options {
	return endcrypt.Options{
		Workers: f.Workers,
		OnRound: func(done, total int) {
			bar.Add(1)
		},
	}
}

func newRoundBar(description string, rounds int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		rounds,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
