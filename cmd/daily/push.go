package main

import (
	"fmt"
	"os"

	"github.com/moxxiRan/daily-site/internal/core"
	"github.com/moxxiRan/daily-site/pkg/filesystem"
	"github.com/spf13/cobra"
)

var pushDryRun bool

func init() {
	pushCmd.Flags().BoolVarP(&pushDryRun, "dry-run", "n", false, "Show the changes without uploading")
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the site to the remote",
	Long:  `Upload the new and changed files of the content root to the configured remote.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Println("Too many arguments. No argument is supported.")
			os.Exit(1)
		}

		config := core.CurrentConfig()
		config.DryRun = pushDryRun
		if err := config.LoadEnv(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		remote, err := config.Remote()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		ctx, cancel := commandContext()
		defer cancel()
		result, err := config.Push(ctx, remote)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, key := range result.Uploaded {
			fmt.Printf("  uploaded: %s\n", key)
		}
		for _, key := range result.Deleted {
			fmt.Printf("   deleted: %s\n", key)
		}
		size := filesystem.FilesSize(config.ContentDir(), result.Uploaded)
		fmt.Printf("%s (%s sent to %s)\n", result, filesystem.HumanSize(size), remote)
	},
}
