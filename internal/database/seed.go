package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// RunSeeds applies every *.sql file from database/seeds in lexicographic
// order. Looks in cwd and the parent (when running from bin/).
func RunSeeds(db *gorm.DB) error {
	cwd, _ := os.Getwd()
	dirs := []string{
		filepath.Join(cwd, "database", "seeds"),
		filepath.Join(cwd, "..", "database", "seeds"),
	}
	var seedsDir string
	for _, d := range dirs {
		if _, err := os.Stat(d); err == nil {
			seedsDir, _ = filepath.Abs(d)
			break
		}
	}
	if seedsDir == "" {
		return fmt.Errorf("seeds dir not found (tried database/seeds)")
	}
	entries, err := os.ReadDir(seedsDir)
	if err != nil {
		return err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	for _, f := range files {
		body, err := os.ReadFile(filepath.Join(seedsDir, f))
		if err != nil {
			return fmt.Errorf("seed %s: %w", f, err)
		}
		if err := db.Exec(string(body)).Error; err != nil {
			return fmt.Errorf("seed %s: %w", f, err)
		}
		log.Printf("seed: applied %s", f)
	}
	return nil
}
