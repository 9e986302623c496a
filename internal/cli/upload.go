package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ksyq12/vhostcfg/internal/engine"
	"github.com/spf13/cobra"
)

var uploadTarget string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Replace a managed conf file wholesale",
	Long: `Replace the whole content of one managed conf file with the given
file, or stdin when <file> is "-". The new content is syntax-checked and
the server reloaded; a failed check rolls everything back. Uploading
content identical to the current file is a no-op.

Examples:
  vhostcfg upload vhosts.conf
  vhostcfg upload vhosts-le-ssl.conf --target ssl
  cat vhosts.conf | vhostcfg upload -`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadTarget, "target", engine.TargetHTTP, "Target file (http, ssl)")
	uploadCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the web server")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	content, err := readUploadSource(args[0])
	if err != nil {
		return err
	}

	if err := requireRoot(); err != nil {
		return err
	}

	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	result, err := eng.Upload(uploadTarget, content, !noReload)
	if err != nil {
		return err
	}

	if result.NoOp {
		return outputResult(
			map[string]interface{}{
				"success": true,
				"target":  uploadTarget,
				"no_op":   true,
			},
			"Content already matches %s, nothing to do", result.Path,
		)
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"target":  uploadTarget,
			"no_op":   false,
		},
		"Replaced %s", result.Path,
	)
}

func readUploadSource(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return string(data), nil
}
