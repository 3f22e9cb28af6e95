package main

import (
	"path/filepath"

	"github.com/andresmejia3/endcrypt/pkg/endcrypt"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	decryptFlags struct {
		cipherFlags
		Image string
		Out   string
	}
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an image produced by encrypt",
	Long:  `Regenerates the keystream, removes the mask and reverses the cat map. Key and level (or iterations) must match the values used to encrypt; a mismatch produces noise rather than an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		key, iterations, err := decryptFlags.resolve(cmd)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid arguments")
		}

		if decryptFlags.Out == "" {
			decryptFlags.Out = filepath.Join("output", "decrypted.png")
		}
		if err := ensureDir(decryptFlags.Out); err != nil {
			log.Fatal().Err(err).Msg("Failed to create output directory")
		}

		// Cipher images are never resampled: any interpolation would destroy them.
		encrypted, err := pixel.Load(decryptFlags.Image, 0)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load image")
		}

		bar := newRoundBar("decrypting", max(iterations, 1))
		decrypted, err := endcrypt.Decrypt(encrypted, key, iterations, decryptFlags.options(bar))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decrypt image")
		}
		bar.Finish()

		if err := pixel.Save(decryptFlags.Out, decrypted); err != nil {
			log.Fatal().Err(err).Msg("Failed to write decrypted image")
		}
		log.Info().Str("output", decryptFlags.Out).Msg("Decrypted image")
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptFlags.register(decryptCmd)
	decryptCmd.Flags().StringVarP(&decryptFlags.Image, "image-path", "i", "", "Path to encrypted PNG (required)")
	decryptCmd.MarkFlagRequired("image-path")
	decryptCmd.Flags().StringVarP(&decryptFlags.Out, "output", "o", "", "Output path for the decrypted PNG")
}
