package main

import (
	"errors"
	"log"
	"os"

	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/engine"
)

func main() {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Printf("ERROR: %v", err)
		log.Println("  set PDF2CSV_ENGINE to tabula-java or native")
		os.Exit(2)
	}

	ex, err := engine.New(cfg.Engine, nil)
	if err != nil {
		log.Fatalf("building engine: %v", err)
	}

	log.Printf("engine: %s", engine.Describe(cfg.Engine))
	if err := engine.Check(ex); err != nil {
		log.Printf("engine health: FAIL (%v)", err)
		var appErr *common.AppError
		if errors.As(err, &appErr) && appErr.Hint != "" {
			log.Printf("  hint: %s", appErr.Hint)
		}
		os.Exit(1)
	}
	log.Println("engine health: OK")
}
