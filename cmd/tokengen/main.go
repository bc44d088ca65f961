// Package main provides a CLI tool for generating bank-adapter credentials:
// caller JWTs for the member API and admin tokens for the tenant config API.
// Caller tokens minted here use the dev signing key unless -key is given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"bankadapter/internal/token"
	"bankadapter/pkg/secrets"
)

// Matches config.go when JWT_SIGNING_KEY is not set.
const devSigningKey = "dev-secret-key-change-in-production"

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Hash      string            `json:"hash,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	callerCmd := flag.NewFlagSet("caller", flag.ExitOnError)
	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)

	callerSubject := callerCmd.String("subject", "test-caller", "Token subject (the calling system's identity)")
	callerClientID := callerCmd.String("client-id", "test-client", "Client ID claim")
	callerTTL := callerCmd.Duration("ttl", token.DefaultTTL, "Token time-to-live")
	callerKey := callerCmd.String("key", devSigningKey, "JWT signing key (must match the server's JWT_SIGNING_KEY)")
	callerJSON := callerCmd.Bool("json", false, "Output as JSON")

	adminJSON := adminCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "caller":
		callerCmd.Parse(os.Args[2:])
		generateCallerToken(*callerSubject, *callerClientID, *callerTTL, *callerKey, *callerJSON)
	case "admin":
		adminCmd.Parse(os.Args[2:])
		generateAdminToken(*adminJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate bank-adapter credentials

Usage:
  tokengen <command> [flags]

Commands:
  caller    Generate a caller JWT for the member API
  admin     Generate an admin token and its hash for ADMIN_TOKEN_HASH

Examples:
  # Generate a caller token with defaults (dev signing key)
  tokengen caller

  # Generate a caller token for a named system with a custom TTL
  tokengen caller -subject wallet-core -ttl 1h

  # Generate against a production signing key
  tokengen caller -key "$JWT_SIGNING_KEY"

  # Generate an admin token; export the printed hash as ADMIN_TOKEN_HASH
  tokengen admin

Use "tokengen <command> -h" for more information about a command.`)
}

func generateCallerToken(subject, clientID string, ttl time.Duration, signingKey string, jsonOutput bool) {
	svc := token.NewService(signingKey, token.DefaultIssuer, token.DefaultAudience, ttl)

	signed, err := svc.Generate(subject, clientID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     signed,
			Type:      "caller_token",
			ExpiresIn: ttl.String(),
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Caller Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Subject:    %s\n", subject)
	fmt.Printf("Client ID:  %s\n", clientID)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(signed)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/api/member/list")
}

func generateAdminToken(jsonOutput bool) {
	raw, err := secrets.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	hash, err := secrets.Hash(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token: raw,
			Type:  "admin_token",
			Hash:  hash,
			Usage: map[string]string{
				"header": "X-Admin-Token: <token>",
				"env":    "ADMIN_TOKEN_HASH=<hash>",
			},
		})
		return
	}

	fmt.Println("Admin API Token")
	fmt.Println("===============")
	fmt.Printf("Token: %s\n", raw)
	fmt.Printf("Hash:  %s\n", hash)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  export ADMIN_TOKEN_HASH='" + hash + "'")
	fmt.Println("  curl -H \"X-Admin-Token: " + raw + "\" http://localhost:8080/admin/tenant-configs")
	fmt.Println()
	fmt.Println("The raw token is shown once; only the hash is stored server-side.")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
