package service

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cheeseblog/app/sessions"

	"github.com/spf13/cobra"
)

var errCancelled = errors.New("operation cancelled")

func newSessionsCmd(flags *globalFlags) *cobra.Command {
	var yes bool

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage the session store",
	}
	sessionsCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	backupCmd := &cobra.Command{
		Use:   "backup [file]",
		Short: "Write a backup of the session store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openSessionStore(cmd, flags)
			if err != nil {
				return err
			}
			defer closeStore()

			backupFile := filepath.Join("data", "backups", fmt.Sprintf("sessions_%d.bak", time.Now().Unix()))
			if len(args) == 1 {
				backupFile = args[0]
			}
			if err := os.MkdirAll(filepath.Dir(backupFile), 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := store.Backup(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sessions backed up successfully to %s\n", backupFile)
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Load a backup into the session store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			fi, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat backup file: %w", err)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", args[0])
			}

			if !yes && !confirm(cmd, "Restoring merges the backup into the current sessions. Continue?") {
				return errCancelled
			}

			store, closeStore, err := openSessionStore(cmd, flags)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Restore(f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessions restored successfully")
			return nil
		},
	}

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Log everyone out by dropping all sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "Are you sure you want to drop all sessions? This cannot be undone.") {
				return errCancelled
			}

			store, closeStore, err := openSessionStore(cmd, flags)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clean sessions: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessions cleaned successfully")
			return nil
		},
	}

	sessionsCmd.AddCommand(backupCmd, restoreCmd, cleanCmd)
	return sessionsCmd
}

// openSessionStore opens the configured badger directory. The store is only
// used for maintenance, so no signing secret is needed.
func openSessionStore(cmd *cobra.Command, flags *globalFlags) (*sessions.Store, func(), error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, nil, err
	}
	db, err := sessions.Open(cfg.SessionPath)
	if err != nil {
		return nil, nil, err
	}
	return sessions.NewStore(db, nil, cfg.SessionTTL), func() { db.Close() }, nil
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
