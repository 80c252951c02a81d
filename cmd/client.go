package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/client"
	"github.com/spf13/cobra"
)

var (
	// server address
	clientServerAddr string
	clientTimeout    time.Duration

	// create/get/update/delete fields
	newName  string
	newEmail string
	userId   int32

	// TLS flags
	insecure      bool
	tlsCA         string
	tlsClientCert string
	tlsClientKey  string
)

// Build DialConfig from CLI flags
func getDialConfig() client.DialConfig {
	return client.DialConfig{
		Address:    clientServerAddr,
		Insecure:   insecure,
		RootCA:     tlsCA,
		ClientCert: tlsClientCert,
		ClientKey:  tlsClientKey,
	}
}

// withClient dials the server, runs fn with a deadline-bound context and
// closes the connection afterwards.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *client.GRPCClient) error) error {
	c, err := client.NewClient(getDialConfig())
	if err != nil {
		return err
	}
	defer c.Close()
	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	defer cancel()
	return fn(ctx, c)
}

// Root client command
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Interact with the gRPC server",
	Long:  "Commands for listing, creating, retrieving, updating and deleting users via the gRPC client.",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			log.Printf("Listing users from %s", clientServerAddr)
			users, err := c.ListUsers(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
			}
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if newName == "" || newEmail == "" {
			return errors.New("both --name and --email must be specified")
		}
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			user, err := c.CreateUser(ctx, newName, newEmail)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user: %+v\n", *user)
			return nil
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a user by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			user, err := c.GetUser(ctx, userId)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "User not found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", *user)
			return nil
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Overwrite a user's name and email",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			user, err := c.UpdateUser(ctx, userId, newName, newEmail)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated user: %+v\n", *user)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			if err := c.DeleteUser(ctx, userId); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", userId)
			return nil
		})
	},
}

func init() {

	clientCmd.PersistentFlags().StringVarP(&clientServerAddr,
		"addr", "a", "127.0.0.1:9090", "Server address")

	clientCmd.PersistentFlags().DurationVar(&clientTimeout,
		"timeout", 10*time.Second, "Per-command RPC deadline")

	clientCmd.PersistentFlags().BoolVar(
		&insecure, "insecure", false, "Use insecure gRPC (no TLS)")

	clientCmd.PersistentFlags().StringVar(
		&tlsCA, "tls-ca", "", "Path to root CA certificate")

	clientCmd.PersistentFlags().StringVar(
		&tlsClientCert, "tls-cert", "", "Path to client certificate for mTLS")

	clientCmd.PersistentFlags().StringVar(
		&tlsClientKey, "tls-key", "", "Path to client private key for mTLS")

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVarP(&newName, "name", "n", "", "Name of the user")
		c.Flags().StringVarP(&newEmail, "email", "e", "", "Email of the user")
	}

	for _, c := range []*cobra.Command{getCmd, updateCmd, deleteCmd} {
		c.Flags().Int32VarP(&userId, "id", "i", 0, "ID of the user")
		_ = c.MarkFlagRequired("id")
	}

	clientCmd.AddCommand(listCmd, createCmd, getCmd, updateCmd, deleteCmd)
	rootCmd.AddCommand(clientCmd)
}
