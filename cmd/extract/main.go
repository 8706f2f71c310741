package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
	"github.com/Knotcreativ/kraftd-extract/internal/pipeline"
	"github.com/Knotcreativ/kraftd-extract/internal/textsource"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to a plain-text or .xlsx procurement document")
		hint     = flag.String("hint", "", "optional document type hint (RFQ, BOQ, QUOTATION, PO, INVOICE, CONTRACT)")
		classify = flag.Bool("classify-only", false, "only classify, skip the rest of the pipeline")
		pretty   = flag.Bool("pretty", false, "indent the JSON output")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *filePath == "" {
		logger.Error("usage", "cmd", "extract -file <document> [-hint TYPE] [-classify-only] [-pretty]")
		os.Exit(2)
	}

	text, sourceName, err := textsource.FromFile(*filePath)
	if err != nil {
		logger.Error("read input", "file", *filePath, "error", err)
		os.Exit(1)
	}

	proc, err := pipeline.NewProcessor(logger, common.LoadConfig())
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}

	var payload any
	if *classify {
		res := proc.Classify(text, sourceName, constants.ParseDocumentType(*hint))
		payload = res
	} else {
		res := proc.Process(text, sourceName)
		if !res.Success {
			logger.Error("extraction failed", "file", sourceName, "error", *res.Error)
			os.Exit(1)
		}
		payload = res
	}

	out, err := marshal(payload, *pretty)
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}

	// sanity-check the shape we hand downstream
	if _, ok := payload.(entity.ExtractionResult); ok {
		if err := entity.ValidateJSONAgainstSchema(entity.BuildExtractionResultSchema(), out); err != nil {
			logger.Error("result failed schema validation", "error", err)
			os.Exit(1)
		}
	}

	fmt.Println(string(out))
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
