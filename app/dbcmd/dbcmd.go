// Package dbcmd implements maintenance commands for the embedded Badger database.
package dbcmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bloglist/app/repositories"
)

// ErrCancelled is returned when the user declines a destructive operation.
var ErrCancelled = errors.New("operation cancelled")

// Commands operates on the database directory at Path. Confirmation questions
// are written to Out and answered from In unless Force is set.
type Commands struct {
	Path      string
	BackupDir string
	Force     bool
	In        io.Reader
	Out       io.Writer
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Init creates a new empty database
func (c Commands) Init() error {
	if exists(c.Path) {
		return fmt.Errorf("database already exists at %s; use clean first to reinitialize", c.Path)
	}
	if err := os.MkdirAll(c.Path, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	db, err := repositories.Open(c.Path)
	if err != nil {
		return err
	}
	if err := db.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Database initialized at %s\n", c.Path)
	return nil
}

// Clean removes the database
func (c Commands) Clean() error {
	if !exists(c.Path) {
		fmt.Fprintln(c.Out, "Database is already clean (does not exist)")
		return nil
	}
	if !c.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		return ErrCancelled
	}
	if err := os.RemoveAll(c.Path); err != nil {
		return fmt.Errorf("clean database: %w", err)
	}
	fmt.Fprintln(c.Out, "Database cleaned successfully")
	return nil
}

// Backup writes a full backup into BackupDir and returns the file name.
func (c Commands) Backup() (string, error) {
	if !exists(c.Path) {
		return "", fmt.Errorf("no database exists at %s", c.Path)
	}
	if err := os.MkdirAll(c.BackupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	db, err := repositories.Open(c.Path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	backupFile := filepath.Join(c.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}
	fmt.Fprintf(c.Out, "Database backed up to %s\n", backupFile)
	return backupFile, nil
}

// Restore replaces the database with the contents of backupFile
func (c Commands) Restore(backupFile string) error {
	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	if exists(c.Path) {
		if !c.confirm("Existing database found. Do you want to replace it?") {
			return ErrCancelled
		}
		if err := os.RemoveAll(c.Path); err != nil {
			return fmt.Errorf("remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(c.Path, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := repositories.Open(c.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Load(f, 4); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	fmt.Fprintln(c.Out, "Database restored successfully")
	return nil
}

func (c Commands) confirm(question string) bool {
	if c.Force {
		return true
	}
	fmt.Fprintf(c.Out, "%s [y/N] ", question)
	if c.In == nil {
		return false
	}
	answer, _ := bufio.NewReader(c.In).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
