package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/crm"
	"crmctl/internal/screens"
)

// tasks is visible to every role, so it carries no navGated entry.
// Role checks happen per action inside the screen.
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksFilterStatus string

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your visible tasks, optionally filtered by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		screen := screens.NewTasks(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		rows := make([][]string, 0)
		for _, t := range screen.ByStatus(tasksFilterStatus) {
			rows = append(rows, []string{
				fmt.Sprint(t.ID), t.Title, t.Priority, t.DueDate, t.AssignedTo, t.Status,
			})
		}
		table([]string{"ID", "TITLE", "PRIORITY", "DUE", "ASSIGNED TO", "STATUS"}, rows)
		return nil
	},
}

var taskDraft crm.Task

func taskFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&taskDraft.Title, "title", "", "task title")
	cmd.Flags().StringVar(&taskDraft.Description, "desc", "", "task description")
	cmd.Flags().StringVar(&taskDraft.DueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&taskDraft.Priority, "priority", "Medium", "High, Medium or Low")
	cmd.Flags().StringVar(&taskDraft.AssignedTo, "assignee", "", "assignee (display name)")
	cmd.Flags().StringVar(&taskDraft.Status, "status", "Open", "Open, In Progress or Completed")
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		created, err := screens.NewTasks(client, sess).Submit(cmd.Context(), taskDraft, 0)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created task #%d %s\n", created.ID, created.Title)
		return nil
	},
}

var tasksEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a task record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		screen := screens.NewTasks(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		draft, ok := screen.Find(id)
		if !ok {
			return fmt.Errorf("task %d not found", id)
		}
		set := map[string]*string{
			"title": &draft.Title, "desc": &draft.Description, "due": &draft.DueDate,
			"priority": &draft.Priority, "assignee": &draft.AssignedTo, "status": &draft.Status,
		}
		for flag, field := range set {
			if cmd.Flags().Changed(flag) {
				*field, _ = cmd.Flags().GetString(flag)
			}
		}

		updated, err := screen.Submit(cmd.Context(), draft, id)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated task #%d %s\n", updated.ID, updated.Title)
		return nil
	},
}

// done is the one mutation a sales rep may run, and only on tasks
// assigned to them. Running it again reopens the task.
var tasksDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between Completed and Open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		screen := screens.NewTasks(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		toggled, err := screen.Toggle(cmd.Context(), id)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Task #%d is now %s\n", toggled.ID, toggled.Status)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		screen := screens.NewTasks(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		err = screen.Delete(cmd.Context(), id, func() bool {
			return confirm(fmt.Sprintf("Delete task %d?", id))
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Deleted task #%d\n", id)
		return nil
	},
}

func init() {
	tasksListCmd.Flags().StringVar(&tasksFilterStatus, "status", "", "show only this status")
	taskFlags(tasksAddCmd)
	taskFlags(tasksEditCmd)

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksEditCmd, tasksDoneCmd, tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
