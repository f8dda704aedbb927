package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "papertrade-cli",
		Short: "Papertrade CLI tool",
		Long:  `A command line interface for interacting with the Papertrade API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Papertrade API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PAPERTRADE_TOKEN"), "Session token (defaults to PAPERTRADE_TOKEN)")

	registerCmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new trading account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/register", map[string]any{
				"username": args[0],
				"password": args[1],
			})
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print a session token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/login", map[string]any{
				"username": args[0],
				"password": args[1],
			})
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Destroy the current session",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/logout", nil)
		},
	}

	quoteCmd := &cobra.Command{
		Use:   "quote <symbol>",
		Short: "Look up the current price for a symbol",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/quote/" + args[0])
		},
	}

	buyCmd := &cobra.Command{
		Use:   "buy <symbol> <shares>",
		Short: "Buy shares at the current price",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			trade("/api/v1/trades/buy", args[0], args[1])
		},
	}

	sellCmd := &cobra.Command{
		Use:   "sell <symbol> <shares>",
		Short: "Sell shares at the current price",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			trade("/api/v1/trades/sell", args[0], args[1])
		},
	}

	portfolioCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show holdings valued at current prices",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/portfolio")
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List trades, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			get(fmt.Sprintf("/api/v1/history?limit=%d&offset=%d", limit, offset))
		},
	}
	historyCmd.Flags().Int("limit", 50, "Maximum trades to return")
	historyCmd.Flags().Int("offset", 0, "Trades to skip")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, quoteCmd, buyCmd, sellCmd, portfolioCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func trade(path, symbol, shares string) {
	n, err := strconv.ParseInt(shares, 10, 64)
	if err != nil {
		fmt.Printf("Invalid share count %q\n", shares)
		os.Exit(1)
	}

	post(path, map[string]any{
		"symbol": symbol,
		"shares": n,
	})
}

func get(path string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	do(req)
}

func post(path string, body map[string]any) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			os.Exit(1)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, payload)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	do(req)
}

func do(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
