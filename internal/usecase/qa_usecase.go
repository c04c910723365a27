package usecase

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rghose/resume-screener/internal/model"
	"github.com/rghose/resume-screener/internal/prompt"
	"github.com/rghose/resume-screener/internal/service"
)

// QAUsecase answers natural-language questions about spreadsheet
// data: fetch the dataset, embed its summary in a prompt, pass the
// model's answer through untouched.
type QAUsecase struct {
	fetcher service.SheetFetcher
	llm     service.LLMClient
}

func NewQAUsecase(fetcher service.SheetFetcher, llm service.LLMClient) *QAUsecase {
	return &QAUsecase{fetcher: fetcher, llm: llm}
}

func (uc *QAUsecase) Answer(ctx context.Context, ds *model.SheetDataset, question string) (string, error) {
	if ds == nil {
		return "", fmt.Errorf("no data loaded")
	}
	return uc.llm.Generate(ctx, prompt.Question(ds.Summary(), question))
}

// RunInteractive drives the read-line session: sheet id/URL and
// worksheet name first, then a Q&A loop. `summary` reprints the
// dataset overview, `refresh` re-fetches past the cache, and
// `quit`/`exit`/`q` ends the session; anything else is treated as a
// question about the data.
func (uc *QAUsecase) RunInteractive(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	fmt.Fprint(out, "Sheet ID or URL: ")
	if !scanner.Scan() {
		return scanner.Err()
	}
	sheetRef := strings.TrimSpace(scanner.Text())
	if sheetRef == "" {
		fmt.Fprintln(out, "No sheet ID/URL provided")
		return nil
	}

	fmt.Fprint(out, "Worksheet name (press Enter for first sheet): ")
	if !scanner.Scan() {
		return scanner.Err()
	}
	worksheet := strings.TrimSpace(scanner.Text())

	ds, err := uc.fetcher.Fetch(ctx, sheetRef, worksheet, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nDATA SUMMARY")
	fmt.Fprintln(out, ds.Summary())
	fmt.Fprintln(out, "\nAsk questions about the data (type 'quit' to exit)")

	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "summary":
			fmt.Fprintln(out, ds.Summary())
			continue
		case "refresh":
			refreshed, err := uc.fetcher.Fetch(ctx, sheetRef, worksheet, false)
			if err != nil {
				fmt.Fprintf(out, "Refresh failed: %v\n", err)
				continue
			}
			ds = refreshed
			fmt.Fprintln(out, "Data refreshed")
			continue
		}

		answer, err := uc.Answer(ctx, ds, line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\nAnswer:\n%s\n", answer)
	}
}
