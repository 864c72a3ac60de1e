package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/Maya170605/customs-backend/config"
	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

var unpPattern = regexp.MustCompile(`^\d{9}$`)

// Imports the UNP company registry from an XLSX export. Expected columns:
// UNP number, company name. The header row is skipped, malformed rows are
// reported and dropped, duplicates within the file are collapsed.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	unpRepo := repository.NewUnpRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	unps, err := readUnpsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total registry entries to import: %d\n", len(unps))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := unpRepo.BulkCreate(unps, batchSize); err != nil {
		log.Fatal("Failed to bulk create registry entries:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total registry entries imported: %d\n", len(unps))
}

func readUnpsFromXLSX(filePath string) ([]model.Unp, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	seen := make(map[string]bool)
	var unps []model.Unp
	skipped := 0

	for i, row := range rows {
		// Skip header row
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		number := strings.TrimSpace(row[0])
		companyName := strings.TrimSpace(row[1])

		if !unpPattern.MatchString(number) || companyName == "" {
			fmt.Printf("Skipping invalid row %d: unp=%q company=%q\n", i+1, number, companyName)
			skipped++
			continue
		}
		if seen[number] {
			skipped++
			continue
		}
		seen[number] = true

		unps = append(unps, model.Unp{
			Unp:         number,
			CompanyName: companyName,
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}
	return unps, nil
}
