package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

type formsClient struct{ serverURL *string }

func newFormsCmd(serverURL *string) *cobra.Command {
	f := &formsClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "forms", Short: "Manage forms"}
	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List forms with dashboard stats", RunE: f.list})
	create := &cobra.Command{Use: "create", Short: "Create a form", RunE: f.create}
	create.Flags().String("title", "", "Form title (required)")
	create.Flags().String("description", "", "Form description")
	create.Flags().String("status", "draft", "Form status: draft, active or archived")
	cmd.AddCommand(create)
	cmd.AddCommand(&cobra.Command{Use: "get", Short: "Get form by id", Args: cobra.ExactArgs(1), RunE: f.get})
	cmd.AddCommand(&cobra.Command{Use: "delete", Short: "Delete form and its responses", Args: cobra.ExactArgs(1), RunE: f.delete})
	return cmd
}

func (f *formsClient) list(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("GET", *f.serverURL+"/api/forms", nil)
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

func (f *formsClient) create(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	status, _ := cmd.Flags().GetString("status")
	body := map[string]any{"title": title, "description": description, "status": status, "fields": []any{}}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", *f.serverURL+"/api/forms", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("create failed: %s", resp.Status)
	}
	var out struct {
		Form struct {
			ID string `json:"id"`
		} `json:"form"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created form %s\n", out.Form.ID)
	return nil
}

func (f *formsClient) get(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("GET", *f.serverURL+"/api/forms/"+args[0], nil)
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

func (f *formsClient) delete(cmd *cobra.Command, args []string) error {
	token, err := ensureAccessToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("DELETE", *f.serverURL+"/api/forms/"+args[0], nil)
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
