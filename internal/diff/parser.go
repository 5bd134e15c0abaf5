package diff

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/prscribe/prscribe/internal/logging"
)

type ParserConfig struct {
	MaxLinesPerFile int // cap on retained added/removed lines per file
	MaxInputBytes   int // input larger than this is truncated before parsing
}

func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		MaxLinesPerFile: 1000,
		MaxInputBytes:   5 * 1024 * 1024,
	}
}

type Parser struct {
	cfg ParserConfig
	log logging.Logger
}

func NewParser(cfg ParserConfig, log logging.Logger) *Parser {
	if cfg.MaxLinesPerFile <= 0 {
		cfg.MaxLinesPerFile = DefaultParserConfig().MaxLinesPerFile
	}
	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = DefaultParserConfig().MaxInputBytes
	}
	return &Parser{cfg: cfg, log: log.WithName("parser")}
}

// Parse scans the diff line by line and builds per-file change records.
// Parsing is line-fault-tolerant: a malformed line never aborts processing of
// the rest of the diff. Binary file sections are skipped until the next file
// header.
func (p *Parser) Parse(diffText string) *ParseResult {
	res := &ParseResult{index: make(map[string]*FileChange)}
	if strings.TrimSpace(diffText) == "" {
		return res
	}

	if len(diffText) > p.cfg.MaxInputBytes {
		p.log.Info("diff exceeds max input size, truncating",
			"bytes", len(diffText), "max_bytes", p.cfg.MaxInputBytes)
		diffText = truncateAtBoundary(diffText, p.cfg.MaxInputBytes)
		res.InputTruncated = true
	}

	var current *FileChange
	skipBinary := false

	for _, raw := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(raw, "Binary files ") || strings.HasPrefix(raw, "GIT binary patch") {
			if current != nil {
				current.Binary = true
			}
			skipBinary = true
			continue
		}

		line := ClassifyLine(raw)

		if line.Kind == LineFileHeader {
			skipBinary = false
			current = res.file(line.Path)
			continue
		}
		if skipBinary || current == nil {
			continue
		}

		switch line.Kind {
		case LineHunkHeader:
			if line.Content != "" {
				current.Hunks = append(current.Hunks, line.Content)
			}
		case LineAddition:
			res.TotalAdded++
			current.AddedTotal++
			if len(raw) > maxLineLength || line.Content == "" {
				continue
			}
			if len(current.Added) < p.cfg.MaxLinesPerFile {
				current.Added = append(current.Added, line.Content)
			}
		case LineDeletion:
			res.TotalRemoved++
			current.RemovedTotal++
			if len(raw) > maxLineLength || line.Content == "" {
				continue
			}
			if len(current.Removed) < p.cfg.MaxLinesPerFile {
				current.Removed = append(current.Removed, line.Content)
			}
		}
	}

	return res
}

// truncateAtBoundary cuts text down to at most maxBytes, preferring to cut at
// a file or hunk boundary so the tail of the truncated diff stays parseable.
func truncateAtBoundary(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{"\ndiff --git", "\n@@", "\n", ""}),
		textsplitter.WithChunkSize(maxBytes),
		textsplitter.WithChunkOverlap(0),
	)
	parts, err := splitter.SplitText(text)
	if err != nil || len(parts) == 0 || len(parts[0]) > maxBytes {
		return text[:maxBytes]
	}
	return parts[0]
}
