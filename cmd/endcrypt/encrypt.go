package main

import (
	"path/filepath"

	"github.com/andresmejia3/endcrypt/pkg/endcrypt"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	encryptFlags struct {
		cipherFlags
		Image string
		Out   string
		Size  int
	}
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt an image",
	Long:  `Normalises the image to a square RGB canvas, shuffles pixel positions with the cat map and masks every sample with the chaotic keystream. The output is always PNG so it can be decrypted losslessly.`,
	Run: func(cmd *cobra.Command, args []string) {
		key, iterations, err := encryptFlags.resolve(cmd)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid arguments")
		}

		if encryptFlags.Out == "" {
			encryptFlags.Out = filepath.Join("output", "encrypted.png")
		}
		if err := ensureDir(encryptFlags.Out); err != nil {
			log.Fatal().Err(err).Msg("Failed to create output directory")
		}

		img, err := pixel.Load(encryptFlags.Image, encryptFlags.Size)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load image")
		}
		log.Debug().Int("width", img.W).Int("height", img.H).Msg("Image dimensions")

		bar := newRoundBar("encrypting", max(iterations, 1))
		encrypted, err := endcrypt.Encrypt(img, key, iterations, encryptFlags.options(bar))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encrypt image")
		}
		bar.Finish()

		if err := pixel.Save(encryptFlags.Out, encrypted); err != nil {
			log.Fatal().Err(err).Msg("Failed to write encrypted image")
		}
		log.Info().
			Str("output", encryptFlags.Out).
			Int("iterations", iterations).
			Int("level", endcrypt.SecurityLevel(iterations)).
			Msg("Encrypted image")
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptFlags.register(encryptCmd)
	encryptCmd.Flags().StringVarP(&encryptFlags.Image, "image-path", "i", "", "Path to image (required)")
	encryptCmd.MarkFlagRequired("image-path")
	encryptCmd.Flags().StringVarP(&encryptFlags.Out, "output", "o", "", "Output path for the encrypted PNG")
	encryptCmd.Flags().IntVar(&encryptFlags.Size, "size", pixel.CanvasSize, "Resize to a size x size canvas (0 keeps native dimensions)")
}
