package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ado1d/profile-taks-manager/cmd/cli/config"
	"github.com/ado1d/profile-taks-manager/cmd/cli/output"
	"github.com/spf13/cobra"
)

type task struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		createTaskCmd(),
		getTaskCmd(),
		updateTaskCmd(),
		deleteTaskCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	var status string
	var all bool
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (admins may pass --all to span every user)",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if status != "" {
				q.Set("status", status)
			}
			if all {
				q.Set("all", "true")
			}
			q.Set("page", strconv.Itoa(page))
			q.Set("limit", strconv.Itoa(limit))

			var out struct {
				Data []task `json:"data"`
				Meta struct {
					Page  int `json:"page"`
					Limit int `json:"limit"`
					Total int `json:"total"`
				} `json:"meta"`
			}
			if err := call("GET", "/tasks?"+q.Encode(), nil, &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Data))
			for _, t := range out.Data {
				desc := ""
				if t.Description != nil {
					desc = *t.Description
				}
				rows = append(rows, []interface{}{t.ID, t.UserID, t.Title, desc, t.Status, t.CreatedAt.Format(time.RFC3339)})
			}
			output.RenderTable([]string{"ID", "Owner", "Title", "Description", "Status", "Created"}, rows)
			fmt.Printf("page %d of %d tasks (limit %d)\n", out.Meta.Page, out.Meta.Total, out.Meta.Limit)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", `Filter by status ("To Do", "In Progress", "Completed")`)
	cmd.Flags().BoolVar(&all, "all", false, "List tasks of all users (admin only)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size (max 100)")

	return cmd
}

// ==========================
// CREATE
// ==========================
func createTaskCmd() *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"title": title}
			if description != "" {
				payload["description"] = description
			}
			if status != "" {
				payload["status"] = status
			}

			var t task
			if err := call("POST", "/tasks", payload, &t); err != nil {
				return err
			}
			fmt.Printf("Created task %d: %s [%s]\n", t.ID, t.Title, t.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", `Initial status (default "To Do")`)

	return cmd
}

// ==========================
// GET
// ==========================
func getTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t task
			if err := call("GET", "/tasks/"+args[0], nil, &t); err != nil {
				return err
			}
			b, _ := json.MarshalIndent(t, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
}

// ==========================
// UPDATE
// ==========================
func updateTaskCmd() *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields (only the flags you pass are changed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("title") {
				payload["title"] = title
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}
			if cmd.Flags().Changed("status") {
				payload["status"] = status
			}
			if len(payload) == 0 {
				return fmt.Errorf("pass at least one of --title, --description, --status")
			}

			var t task
			if err := call("PATCH", "/tasks/"+args[0], payload, &t); err != nil {
				return err
			}
			fmt.Printf("Updated task %d: %s [%s]\n", t.ID, t.Title, t.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := call("DELETE", "/tasks/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Println("Task deleted.")
			return nil
		},
	}
}

// call performs an authenticated API request and decodes the JSON response into out.
func call(method, path string, payload interface{}, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}

	return nil
}
