package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"block-lens/pkg/analyzer"
	"block-lens/pkg/logger"
	"block-lens/pkg/parser"
	"block-lens/pkg/types"
	"block-lens/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// errFailed is returned once the failure has already been reported on stdout
var errFailed = errors.New("block-lens: failed")

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "block-lens",
		Usage:     "decode hex encoded Bitcoin blocks",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "decode one or more hex block files and print their JSON report",
				ArgsUsage: "<block.hex>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "network",
						Value:   "mainnet",
						Usage:   "network used for address encoding (mainnet, testnet, regtest, signet)",
						EnvVars: []string{"BLOCKLENS_NETWORK"},
					},
					&cli.BoolFlag{
						Name:    "lenient",
						Usage:   "decode opcodes outside the supported table as unknown instead of failing",
						EnvVars: []string{"BLOCKLENS_LENIENT"},
					},
					&cli.StringFlag{
						Name:  "out",
						Value: "out",
						Usage: "directory receiving <block_hash>.json, empty to skip writing",
					},
					&cli.IntFlag{
						Name:  "jobs",
						Value: 4,
						Usage: "number of files decoded concurrently",
					},
				},
				Action: decodeAction,
			},
			{
				Name:      "hex-check",
				Usage:     "check that a file holds well formed hex",
				ArgsUsage: "<file.hex>",
				Action:    hexCheckAction,
			},
		},
	}
}

func newLogger(c *cli.Context) (zerolog.Logger, error) {
	log, err := logger.New(c.App.ErrWriter, "block-lens", c.String("log-level"))
	if err != nil {
		return log, fmt.Errorf("invalid log level: %w", err)
	}
	return log, nil
}

type decodeResult struct {
	path   string
	output *types.BlockOutput
	err    error
}

func decodeAction(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		printError(c.App.Writer, &types.ErrorInfo{Code: "INVALID_ARGS", Message: "Usage: block-lens decode <block.hex>..."})
		return errFailed
	}

	network := c.String("network")
	if _, err := analyzer.NetParams(network); err != nil {
		printError(c.App.Writer, &types.ErrorInfo{Code: "INVALID_ARGS", Message: err.Error()})
		return errFailed
	}

	opts := parser.Options{}
	if c.Bool("lenient") {
		opts.Opcodes = parser.OpcodeLenient
	}
	decoder := parser.NewDecoder(opts)

	results := make([]decodeResult, c.NArg())
	g := new(errgroup.Group)
	g.SetLimit(max(c.Int("jobs"), 1))

	for i, path := range c.Args().Slice() {
		results[i].path = path
		g.Go(func() error {
			results[i].output, results[i].err = decodeFile(decoder, path, network)
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for _, res := range results {
		if res.err != nil {
			failed = true
			info := errorInfo(res.err)
			log.Error().Str("file", res.path).Str("code", info.Code).Msg(info.Message)
			printError(c.App.Writer, info)
			continue
		}

		log.Info().
			Str("file", res.path).
			Str("block_hash", res.output.BlockHeader.BlockHash).
			Int("tx_count", res.output.TxCount).
			Int("size_bytes", res.output.SizeBytes).
			Msg("decoded block")

		if err := writeOutput(c.App.Writer, c.String("out"), res.output); err != nil {
			failed = true
			log.Error().Err(err).Str("file", res.path).Msg("failed to write output")
			printError(c.App.Writer, &types.ErrorInfo{Code: "IO_ERROR", Message: err.Error()})
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

func decodeFile(decoder *parser.Decoder, path, network string) (*types.BlockOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, err := decoder.DecodeBlockHex(utils.CleanHex(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return analyzer.BuildBlockOutput(block, network)
}

func errorInfo(err error) *types.ErrorInfo {
	if errors.Is(err, fs.ErrNotExist) {
		return &types.ErrorInfo{Code: "FILE_NOT_FOUND", Message: err.Error()}
	}
	return analyzer.ErrorInfoFor(err)
}

func writeOutput(w io.Writer, outDir string, output *types.BlockOutput) error {
	outputJSON, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outputPath := filepath.Join(outDir, output.BlockHeader.BlockHash+".json")
		if err := os.WriteFile(outputPath, outputJSON, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	_, err = fmt.Fprintln(w, string(outputJSON))
	return err
}

func hexCheckAction(c *cli.Context) error {
	if c.NArg() != 1 {
		printError(c.App.Writer, &types.ErrorInfo{Code: "INVALID_ARGS", Message: "Usage: block-lens hex-check <file.hex>"})
		return errFailed
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		printError(c.App.Writer, errorInfo(err))
		return errFailed
	}

	text := utils.CleanHex(string(data))
	b, err := utils.HexToBytes(text)
	if err != nil {
		printError(c.App.Writer, errorInfo(err))
		return errFailed
	}

	out := struct {
		OK        bool `json:"ok"`
		Bytes     int  `json:"bytes"`
		Lowercase bool `json:"lowercase"`
	}{
		OK:        true,
		Bytes:     len(b),
		Lowercase: utils.BytesToHex(b) == text,
	}
	outJSON, _ := json.Marshal(out)
	fmt.Fprintln(c.App.Writer, string(outJSON))
	return nil
}

func printError(w io.Writer, info *types.ErrorInfo) {
	type errorOutput struct {
		OK    bool             `json:"ok"`
		Error *types.ErrorInfo `json:"error"`
	}
	errJSON, _ := json.Marshal(errorOutput{OK: false, Error: info})
	fmt.Fprintln(w, strings.TrimSpace(string(errJSON)))
}
