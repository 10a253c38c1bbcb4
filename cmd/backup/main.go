package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"attendly/internal/config"
	"attendly/internal/database"
	"attendly/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		output := *exportOutput
		if output == "" {
			output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
		}
		if err := backupService.ExportToFile(output); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Backup written to %s", output)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			log.Fatal("import requires -input")
		}
		if err := backupService.ImportFromFile(*importInput, *importClear); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Println("Import completed")

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  backup export [-output file.json]")
	fmt.Println("  backup import -input file.json [-clear]")
}
