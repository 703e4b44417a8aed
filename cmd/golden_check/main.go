package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"depression-api/internal/artifact"
	"depression-api/internal/config"
	"depression-api/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

func main() {
	casesPath := flag.String("cases", "testdata/golden.json", "JSON file with golden cases")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	store, err := artifact.Load(cfg.ModelPath, cfg.EncodersPath)
	if err != nil {
		log.Fatal(err)
	}
	cases, err := loadCases(*casesPath)
	if err != nil {
		log.Fatal(err)
	}

	// sin repositorio: la corrida no escribe auditoria
	svc := service.NewPredictionService(zap.NewNop(), store, nil)
	results, err := runCases(ctx, svc, cases)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		status := colorGreen + "PASS" + colorReset
		if !r.Pass {
			status = colorRed + "FAIL" + colorReset
		}
		fmt.Printf("%s %s[%s]%s got=%q\n", status, colorCyan, r.Case.Name, colorReset, r.Got)
		if !r.Pass {
			fmt.Printf("     want=%q\n", r.Case.want())
		}
	}

	failed := countFailures(results)
	fmt.Println("==== Resumen ====")
	fmt.Printf("Casos: %d | OK: %d | Fallidos: %d\n", len(results), len(results)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
