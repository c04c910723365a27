package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rghose/resume-screener/internal/config"
	"github.com/rghose/resume-screener/internal/model"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Spreadsheet fetch failure taxonomy.
var (
	ErrSheetNotFound     = errors.New("spreadsheet not found")
	ErrSheetNotShared    = errors.New("spreadsheet not shared with this account")
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrSheetsAuth        = errors.New("sheets authentication failed")
	ErrSheetsNetwork     = errors.New("sheets network error")
)

const fetchTimeout = 30 * time.Second

// SheetFetcher is what the Q&A agent needs from the spreadsheet side.
type SheetFetcher interface {
	Fetch(ctx context.Context, sheetRef, worksheet string, useCache bool) (*model.SheetDataset, error)
}

// SheetsService reads worksheets through the Google Sheets API and
// keeps a pull-through cache per (sheet id, worksheet) with no TTL;
// useCache=false bypasses and replaces the entry.
type SheetsService struct {
	srv   *sheets.Service
	mu    sync.Mutex
	cache map[string]*model.SheetDataset
}

// NewSheetsService authenticates from the configured credentials
// file. A service account key is used directly; OAuth installed-app
// client secrets trigger the browser consent flow with the token
// cached at cfg.TokenFile for later runs.
func NewSheetsService(ctx context.Context, cfg *config.SheetsConfig) (*SheetsService, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file: %v", ErrSheetsAuth, err)
	}

	var srv *sheets.Service
	switch {
	case gjson.GetBytes(b, "type").String() == "service_account":
		srv, err = sheets.NewService(ctx,
			option.WithCredentialsJSON(b),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope))
		if err != nil {
			return nil, fmt.Errorf("%w: service account: %v", ErrSheetsAuth, err)
		}
		log.Println("Authenticated using service account")
	case gjson.GetBytes(b, "installed").Exists() || gjson.GetBytes(b, "web").Exists():
		oauthCfg, cfgErr := google.ConfigFromJSON(b, sheets.SpreadsheetsReadonlyScope)
		if cfgErr != nil {
			return nil, fmt.Errorf("%w: parse OAuth client secrets: %v", ErrSheetsAuth, cfgErr)
		}
		client, cliErr := oauthClient(ctx, oauthCfg, cfg.TokenFile)
		if cliErr != nil {
			return nil, cliErr
		}
		srv, err = sheets.NewService(ctx, option.WithHTTPClient(client))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSheetsAuth, err)
		}
		log.Println("Authenticated using OAuth")
	default:
		return nil, fmt.Errorf("%w: unknown credentials format, expected service account or OAuth client secrets", ErrSheetsAuth)
	}

	return &SheetsService{
		srv:   srv,
		cache: make(map[string]*model.SheetDataset),
	}, nil
}

func oauthClient(ctx context.Context, oauthCfg *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = tokenFromWeb(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			log.Printf("Warning: could not cache OAuth token: %v", err)
		}
	}
	return oauthCfg.Client(ctx, tok), nil
}

func tokenFromWeb(ctx context.Context, oauthCfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("%w: read authorization code: %v", ErrSheetsAuth, err)
	}
	tok, err := oauthCfg.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", ErrSheetsAuth, err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	return tok, json.NewDecoder(f).Decode(tok)
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// ExtractSheetID normalizes a full spreadsheet URL to its id segment;
// anything that is not a URL is returned unchanged.
func ExtractSheetID(input string) string {
	if !strings.Contains(input, "docs.google.com/spreadsheets") {
		return input
	}
	parts := strings.Split(input, "/")
	for i, part := range parts {
		if part == "d" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return input
}

func cacheKey(sheetID, worksheet string) string {
	if worksheet == "" {
		worksheet = "default"
	}
	return sheetID + "_" + worksheet
}

func (s *SheetsService) Fetch(ctx context.Context, sheetRef, worksheet string, useCache bool) (*model.SheetDataset, error) {
	sheetID := ExtractSheetID(sheetRef)
	key := cacheKey(sheetID, worksheet)

	if useCache {
		s.mu.Lock()
		cached, ok := s.cache[key]
		s.mu.Unlock()
		if ok {
			log.Printf("Using cached data for sheet: %s", key)
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	title := worksheet
	if title == "" {
		meta, err := s.srv.Spreadsheets.Get(sheetID).Fields("sheets.properties.title").Context(ctx).Do()
		if err != nil {
			return nil, mapSheetsError(err, worksheet)
		}
		if len(meta.Sheets) == 0 {
			return nil, fmt.Errorf("%w: spreadsheet has no worksheets", ErrWorksheetNotFound)
		}
		title = meta.Sheets[0].Properties.Title
	}

	resp, err := s.srv.Spreadsheets.Values.Get(sheetID, "'"+title+"'").Context(ctx).Do()
	if err != nil {
		return nil, mapSheetsError(err, title)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("worksheet %q is empty", title)
	}

	ds := datasetFromValues(key, resp.Values)

	s.mu.Lock()
	s.cache[key] = ds
	s.mu.Unlock()

	log.Printf("Fetched %d rows and %d columns from %s", len(ds.Rows), len(ds.Columns), key)
	return ds, nil
}

func datasetFromValues(name string, values [][]interface{}) *model.SheetDataset {
	columns := make([]string, len(values[0]))
	for i, v := range values[0] {
		columns[i] = fmt.Sprint(v)
	}

	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(raw) {
				row[i] = fmt.Sprint(raw[i])
			}
		}
		rows = append(rows, row)
	}
	return &model.SheetDataset{Name: name, Columns: columns, Rows: rows}
}

func mapSheetsError(err error, worksheet string) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case 404:
			return fmt.Errorf("%w: check the sheet id/URL", ErrSheetNotFound)
		case 403:
			return fmt.Errorf("%w: share the sheet with the service account email or use an authorized account", ErrSheetNotShared)
		case 401:
			return fmt.Errorf("%w: %v", ErrSheetsAuth, err)
		case 400:
			// The API reports an unknown worksheet as an unparseable range.
			return fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
		}
	}
	return fmt.Errorf("%w: %v", ErrSheetsNetwork, err)
}
