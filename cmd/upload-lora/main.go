package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lora-canvas-server/modules/common/config"
	"lora-canvas-server/modules/common/fal"
	"lora-canvas-server/modules/common/logger"
	"lora-canvas-server/modules/lora"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "upload-lora <path_to_lora_file>",
		Short:        "Upload a LoRA .safetensors file to fal and print its public URL",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if _, err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}

			client := fal.NewClient(fal.Options{
				Key:        cfg.FalKey,
				StorageURL: cfg.FalStorageURL,
			})

			url, err := uploadFile(cmd, client, args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Upload failed: %v\n", err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\nUpload successful!")
			fmt.Fprintf(out, "File URL: %s\n", url)
			fmt.Fprintln(out, "\nYou can now use this URL in your inference calls.")
			return nil
		},
	}
}

// uploadFile - 파일 존재/확장자 확인 후 업로드
func uploadFile(cmd *cobra.Command, uploader lora.Uploader, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", path)
	}
	if verr := lora.ValidateFilename(path); verr != nil {
		return "", verr
	}

	log.Info().Str("path", path).Msg("📤 [UploadLora] Uploading")
	return uploader.UploadFile(cmd.Context(), path)
}
