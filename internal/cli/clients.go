package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abcall/clients/internal/api/dto"
	"github.com/abcall/clients/internal/core/application/commands"
	"github.com/abcall/clients/internal/core/application/queries"
	"github.com/abcall/clients/internal/core/domain"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  "Inspect and delete client records through the same dispatcher the API uses",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		result, err := services.Bus.ExecuteQuery(cmd.Context(), queries.GetClientsQuery{})
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		clients, _ := result.Result.([]*domain.Client)
		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CLIENT ID\tLEGAL NAME\tPLAN\tCREATED AT")
		for _, client := range clients {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				client.ID,
				client.LegalName,
				client.PlanType,
				client.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <client-id>",
	Short: "Show a client as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		result, err := services.Bus.ExecuteQuery(cmd.Context(), queries.GetClientQuery{ClientID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}
		client, ok := result.Result.(*domain.Client)
		if !ok {
			return fmt.Errorf("client not found: %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.ToClientResponse(client))
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Confirm deletion
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("Are you sure you want to delete client '%s'? (yes/no): ", clientID)
			var confirm string
			fmt.Scanln(&confirm)
			if confirm != "yes" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		_, err = services.Bus.ExecuteCommand(cmd.Context(), commands.DeleteClientCommand{ClientID: clientID})
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("client not found: %s", clientID)
		}
		if err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("Client '%s' deleted successfully\n", clientID)
		return nil
	},
}

func init() {
	clientsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsGetCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
}
