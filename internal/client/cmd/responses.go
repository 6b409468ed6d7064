package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

type responsesClient struct{ serverURL *string }

func newResponsesCmd(serverURL *string) *cobra.Command {
	r := &responsesClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "responses", Short: "Inspect form responses"}
	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List responses for a form", Args: cobra.ExactArgs(1), RunE: r.list})
	cmd.AddCommand(&cobra.Command{Use: "get", Short: "Get response by id", Args: cobra.ExactArgs(1), RunE: r.get})
	cmd.AddCommand(&cobra.Command{Use: "delete", Short: "Delete response by id", Args: cobra.ExactArgs(1), RunE: r.delete})
	return cmd
}

func (r *responsesClient) list(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("GET", *r.serverURL+"/api/responses/form/"+args[0], nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("list failed: %s", resp.Status)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (r *responsesClient) get(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("GET", *r.serverURL+"/api/responses/"+args[0], nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("get failed: %s", resp.Status)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (r *responsesClient) delete(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("DELETE", *r.serverURL+"/api/responses/"+args[0], nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete failed: %s", resp.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
	return nil
}
