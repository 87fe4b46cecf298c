package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/avolkov/libris/internal/config"
	"github.com/avolkov/libris/internal/database"
	"github.com/avolkov/libris/internal/database/books"
)

var demoCatalog = []struct {
	ISBN   string
	Name   string
	Author string
}{
	{"978-0547928227", "The Hobbit", "J.R.R. Tolkien"},
	{"978-0441172719", "Dune", "Frank Herbert"},
	{"978-0451524935", "1984", "George Orwell"},
	{"978-0141439518", "Pride and Prejudice", "Jane Austen"},
	{"978-0064404990", "The Phantom Tollbooth", "Norton Juster"},
	{"978-0553293357", "Foundation", "Isaac Asimov"},
	{"978-0141187761", "Brave New World", "Aldous Huxley"},
	{"978-0385472579", "Zen Speaks", "Tsai Chih Chung"},
}

// SeedCommand loads a small demo catalog into the database.
type SeedCommand struct {
	DatabasePath string
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load a demo catalog into the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)

	created := 0
	for _, entry := range demoCatalog {
		// Skip titles that are already present so reseeding is safe
		existing, err := repo.Search(entry.Name, false)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}

		if _, err := repo.Add(entry.ISBN, entry.Name, entry.Author); err != nil {
			return err
		}
		created++
	}

	fmt.Printf("Seeded %d books into %s\n", created, cmd.DatabasePath)
	return nil
}
