package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "taskman",
	Short: "Task Manager CLI",
	Long:  "Command line interface for interacting with the Profile Task Manager API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command.
func GetRoot() *cobra.Command {
	return RootCmd
}
