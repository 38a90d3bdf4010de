package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(endCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members [team-id]",
	Short: "List the players in the club store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members?team_id=" + args[0])
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [team-id]",
	Short: "Show the career leaderboard for a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard?team_id=" + args[0])
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state [match-id]",
	Short: "Show the live state of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/" + args[0] + "/state")
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [match-id]",
	Short: "Show the persisted report of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/" + args[0] + "/report")
	},
}

var clockCmd = &cobra.Command{
	Use:   "clock [match-id] [start|pause|reset]",
	Short: "Control the match clock",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/"+args[0]+"/clock/"+args[1], "")
	},
}

var endCmd = &cobra.Command{
	Use:   "end [match-id]",
	Short: "Finalize a match and fold stats into career totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/matches/"+args[0]+"/end", "")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
