package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"block-lens/pkg/analyzer"
	"block-lens/pkg/logger"
	"block-lens/pkg/parser"
	"block-lens/pkg/types"
	"block-lens/pkg/utils"

	"github.com/btcsuite/btcd/wire"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// maxBodyBytes bounds a request: a hex encoded maximum size block plus JSON framing
const maxBodyBytes = 2*wire.MaxBlockPayload + 4096

func main() {
	app := &cli.App{
		Name:  "block-lens-web",
		Usage: "serve the block decoder over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Value:   "3000",
				Usage:   "listen port",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	log, err := logger.New(os.Stderr, "block-lens-web", c.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(log)

	addr := ":" + c.String("port")
	log.Info().Str("addr", addr).Msgf("http://127.0.0.1%s", addr)
	return r.Run(addr)
}

func newRouter(log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	// Enable CORS for browser frontends
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/api/decode", handleDecode(log))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fallbackHTML))
	})

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func errorResponse(c *gin.Context, status int, info *types.ErrorInfo) {
	c.JSON(status, types.BlockOutput{OK: false, Error: info})
}

func handleDecode(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, &types.ErrorInfo{Code: "INVALID_REQUEST", Message: "Failed to read request body"})
			return
		}

		var req types.DecodeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			errorResponse(c, http.StatusBadRequest, &types.ErrorInfo{Code: "INVALID_JSON", Message: "Failed to parse JSON"})
			return
		}

		if _, err := analyzer.NetParams(req.Network); err != nil {
			errorResponse(c, http.StatusBadRequest, &types.ErrorInfo{Code: "INVALID_NETWORK", Message: err.Error()})
			return
		}

		opts := parser.Options{}
		if req.Lenient {
			opts.Opcodes = parser.OpcodeLenient
		}

		block, err := parser.NewDecoder(opts).DecodeBlockHex(utils.CleanHex(req.BlockHex))
		if err != nil {
			info := analyzer.ErrorInfoFor(err)
			log.Warn().Str("code", info.Code).Msg(info.Message)
			errorResponse(c, http.StatusBadRequest, info)
			return
		}

		result, err := analyzer.BuildBlockOutput(block, req.Network)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, analyzer.ErrorInfoFor(err))
			return
		}

		log.Info().
			Str("block_hash", result.BlockHeader.BlockHash).
			Int("tx_count", result.TxCount).
			Msg("decoded block")
		c.JSON(http.StatusOK, result)
	}
}

const fallbackHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Block Lens - Bitcoin Block Decoder</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #f7931a; }
        textarea { width: 100%; height: 200px; font-family: monospace; }
        button { background: #f7931a; color: white; padding: 10px 20px; border: none; cursor: pointer; }
        pre { background: #f5f5f5; padding: 15px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Block Lens</h1>
    <p>Paste a hex encoded block below:</p>
    <textarea id="input" placeholder="0100000000000000..."></textarea>
    <br><br>
    <label><input type="checkbox" id="lenient"> decode unknown opcodes</label>
    <button onclick="decode()">Decode Block</button>
    <h2>Result:</h2>
    <pre id="output">Results will appear here...</pre>

    <script>
        async function decode() {
            const output = document.getElementById('output');
            const body = {
                block_hex: document.getElementById('input').value,
                network: 'mainnet',
                lenient: document.getElementById('lenient').checked
            };

            try {
                const response = await fetch('/api/decode', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify(body)
                });
                const result = await response.json();
                output.textContent = JSON.stringify(result, null, 2);
            } catch (err) {
                output.textContent = 'Error: ' + err.message;
            }
        }
    </script>
</body>
</html>`
