package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/erprakash26/karyamate/internal/client/api"
)

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		printlnFn("Please 'login' first.")
		return false
	}
	return true
}

// List fetches tasks (optionally filtered by "open"/"completed"), caches them
// and renders the table.
func (a *App) List(ctx context.Context, status string) error {
	if !a.requireLogin() {
		return nil
	}
	tasks, err := a.client.ListTasks(ctx, status)
	if err != nil {
		printlnFn("List failed:", err.Error())
		return err
	}
	a.tasks = tasks
	if len(tasks) == 0 {
		printlnFn("No tasks.")
		return nil
	}
	for _, t := range tasks {
		printlnFn(formatTaskLine(t))
	}
	return nil
}

// Refresh re-fetches the unfiltered list into the cache.
func (a *App) Refresh(ctx context.Context) error {
	return a.List(ctx, "")
}

// Add prompts for task fields and creates the task. Description, priority and
// due date may be left blank; the server applies its defaults.
func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	priority, err := getSimpleText(a.reader, "Priority Low/Medium/High (optional)", os.Stdout)
	if err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Due date YYYY-MM-DD (optional)", os.Stdout)
	if err != nil {
		return err
	}

	patch := api.TaskPatch{Title: &title}
	if description != "" {
		patch.Description = &description
	}
	if priority != "" {
		patch.Priority = &priority
	}
	if due != "" {
		patch.DueDate = &due
	}

	t, err := a.client.CreateTask(ctx, patch)
	if err != nil {
		printlnFn("Create failed:", err.Error())
		return err
	}
	printlnFn("Created:", formatTaskLine(t))
	return a.Refresh(ctx)
}

// Show prints a single task in full.
func (a *App) Show(ctx context.Context, id int64) error {
	if !a.requireLogin() {
		return nil
	}
	t, err := a.client.GetTask(ctx, id)
	if err != nil {
		printlnFn("Show failed:", err.Error())
		return err
	}
	printlnFn(formatTaskLine(t))
	if t.Description != "" {
		printlnFn("  " + t.Description)
	}
	if t.DueDate != nil {
		printlnFn("  due " + t.DueDate.Format("2006-01-02 15:04"))
	}
	return nil
}

// Edit prompts for new values; blank answers leave the field unchanged, which
// maps directly onto the server's partial-update semantics.
func (a *App) Edit(ctx context.Context, id int64) error {
	if !a.requireLogin() {
		return nil
	}
	title, err := getSimpleText(a.reader, "New title (blank = keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description (blank = keep)", os.Stdout)
	if err != nil {
		return err
	}
	priority, err := getSimpleText(a.reader, "New priority (blank = keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch api.TaskPatch
	if title != "" {
		patch.Title = &title
	}
	if description != "" {
		patch.Description = &description
	}
	if priority != "" {
		patch.Priority = &priority
	}

	t, err := a.client.UpdateTask(ctx, id, patch)
	if err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Updated:", formatTaskLine(t))
	return a.Refresh(ctx)
}

// Done marks a task completed.
func (a *App) Done(ctx context.Context, id int64) error {
	if !a.requireLogin() {
		return nil
	}
	completed := true
	t, err := a.client.UpdateTask(ctx, id, api.TaskPatch{Completed: &completed})
	if err != nil {
		printlnFn("Complete failed:", err.Error())
		return err
	}
	printlnFn("Completed:", formatTaskLine(t))
	return a.Refresh(ctx)
}

// Remove deletes a task permanently.
func (a *App) Remove(ctx context.Context, id int64) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.client.DeleteTask(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return a.Refresh(ctx)
}

func formatTaskLine(t api.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] #%d %-8s %s", mark, t.ID, t.Priority, t.Title)
	if t.DueDate != nil {
		line += " (due " + t.DueDate.Format("2006-01-02") + ")"
	}
	return line
}
