package main

import (
	"github.com/ado1d/profile-taks-manager/cmd/cli/auth"
	"github.com/ado1d/profile-taks-manager/cmd/cli/root"
	"github.com/ado1d/profile-taks-manager/cmd/cli/tasks"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	tasks.InitTasks(rootCmd)
	root.Execute()
}
