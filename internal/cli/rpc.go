package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var rpcURL string

// rpcCmd represents the rpc command group
var rpcCmd = &cobra.Command{
	Use:   "rpc <method> [params-json]",
	Short: "RPC client commands",
	Long: `Call a method on a running server. The params argument is a JSON object,
for example: auctiond rpc collection_info '{"collection":"..."}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var params map[string]interface{}
		if len(args) > 1 {
			if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
				return fmt.Errorf("params must be a JSON object: %w", err)
			}
		}
		return executeMethod(cmd.Context(), args[0], params)
	},
}

func init() {
	rootCmd.AddCommand(rpcCmd)
	rpcCmd.PersistentFlags().StringVar(&rpcURL, "url", "", "server URL (default http://<server.rpc_address>/)")

	rpcCmd.AddCommand(pingCmd, serverInfoCmd, accountInfoCmd, auctionInfoCmd, auctionListCmd, txCmd, submitCmd)
}

func endpoint() (string, error) {
	if rpcURL != "" {
		return rpcURL, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return "http://" + cfg.Server.RPCAddress + "/", nil
}

// executeMethod posts one JSON-RPC request and prints the result
func executeMethod(ctx context.Context, method string, params interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	url, err := endpoint()
	if err != nil {
		return err
	}

	request := map[string]interface{}{"method": method}
	if params != nil {
		request["params"] = []interface{}{params}
	}
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: requestTimeout + 5*time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var response struct {
		Result map[string]interface{} `json:"result"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return fmt.Errorf("invalid response (HTTP %d): %s", resp.StatusCode, data)
	}

	// Pretty print the result
	prettyJSON, err := json.MarshalIndent(response.Result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(prettyJSON))

	if response.Result["status"] == "error" {
		return fmt.Errorf("RPC error %v: %v", response.Result["error"], response.Result["error_message"])
	}
	return nil
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd.Context(), "ping", nil)
	},
}

var serverInfoCmd = &cobra.Command{
	Use:   "server_info",
	Short: "Get server information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd.Context(), "server_info", nil)
	},
}

var accountInfoCmd = &cobra.Command{
	Use:   "account_info <account>",
	Short: "Get account information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd.Context(), "account_info", map[string]interface{}{"account": args[0]})
	},
}

var auctionInfoCmd = &cobra.Command{
	Use:   "auction_info <collection> <asset> [config_seed]",
	Short: "Get an auction record",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{
			"collection": args[0],
			"asset":      args[1],
		}
		if len(args) > 2 {
			seed, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid config_seed: %w", err)
			}
			params["config_seed"] = seed
		}
		return executeMethod(cmd.Context(), "auction_info", params)
	},
}

var auctionListCmd = &cobra.Command{
	Use:   "auction_list [listed|bidding|ended]",
	Short: "List open auctions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{}
		if len(args) > 0 {
			params["status"] = args[0]
		}
		return executeMethod(cmd.Context(), "auction_list", params)
	},
}

var txCmd = &cobra.Command{
	Use:   "tx <hash>",
	Short: "Get a transaction from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeMethod(cmd.Context(), "tx", map[string]interface{}{"transaction": args[0]})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <secret> <tx_json>",
	Short: "Sign on the server and submit a transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var txJSON json.RawMessage
		if err := json.Unmarshal([]byte(args[1]), &txJSON); err != nil {
			return fmt.Errorf("tx_json must be JSON: %w", err)
		}
		return executeMethod(cmd.Context(), "submit", map[string]interface{}{
			"secret":  args[0],
			"tx_json": txJSON,
		})
	},
}
