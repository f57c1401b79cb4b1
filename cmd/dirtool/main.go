// dirtool imports a flat-file facility address book into the Postgres
// directory, initializing the schema first. Existing facility ids are
// skipped so the import is re-runnable.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"transport-route-service/internal/adapters/directory"
	"transport-route-service/internal/config"
	"transport-route-service/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	directoryPath := config.Get("DIRECTORY_PATH", "data/facilities.csv")

	ctx := context.Background()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	pg := directory.NewPostgresStore(pool)
	log.Println("Initializing facility schema...")
	if err := pg.InitSchema(ctx); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}

	fs, err := directory.NewFileStore(directoryPath)
	if err != nil {
		log.Fatalf("open facility file %q: %v", directoryPath, err)
	}

	facilities, err := fs.List(ctx)
	if err != nil {
		log.Fatalf("read facility file: %v", err)
	}

	imported, skipped := 0, 0
	for _, f := range facilities {
		if _, err := pg.Create(ctx, f); err != nil {
			if errors.Is(err, directory.ErrDuplicateFacility) {
				skipped++
				continue
			}
			log.Fatalf("import facility %q: %v", f.FacilityID, err)
		}
		imported++
	}

	log.Printf("Import complete: imported=%d skipped=%d", imported, skipped)
}
