package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/academy-uk/placement-exam/internal/exam"
	"github.com/academy-uk/placement-exam/internal/grading"
	"github.com/academy-uk/placement-exam/internal/model"
)

// grade reads an answer sheet JSON file and prints the graded result.
// Useful for checking the answer key and band thresholds without a server.
//
//	go run ./cmd/grade -sheet answers.json
func main() {
	sheetPath := flag.String("sheet", "", "path to an answer sheet JSON file")
	flag.Parse()

	if *sheetPath == "" {
		fmt.Fprintln(os.Stderr, "usage: grade -sheet <answers.json>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*sheetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read sheet: %v\n", err)
		os.Exit(1)
	}

	var sheet model.AnswerSheet
	if err := json.Unmarshal(raw, &sheet); err != nil {
		fmt.Fprintf(os.Stderr, "parse sheet: %v\n", err)
		os.Exit(1)
	}

	result := grading.Grade(sheet, exam.Key())

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
